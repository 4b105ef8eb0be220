package util

import (
	"strconv"
)

// ParseIntDefault 将字符串转换为整数，解析失败时返回默认值
func ParseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
