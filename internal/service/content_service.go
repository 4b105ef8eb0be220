package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

// ContentService 课程媒体上传：视频探测时长后回填课时，缩略图走同一存储
type ContentService struct {
	Storage    *StorageService
	LessonRepo *repository.LessonRepository
	CourseRepo *repository.CourseRepository
}

func NewContentService(storage *StorageService, lessonRepo *repository.LessonRepository, courseRepo *repository.CourseRepository) *ContentService {
	return &ContentService{Storage: storage, LessonRepo: lessonRepo, CourseRepo: courseRepo}
}

type UploadVideoResult struct {
	URL      string `json:"url"`
	Duration int    `json:"duration"` // 秒
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// UploadLessonVideo 上传课时视频：
// 先落临时文件用 ffmpeg 探测时长和分辨率，再上传到存储后端，
// 最后把时长回填到课时记录
func (s *ContentService) UploadLessonVideo(ctx context.Context, tenantID, lessonID string, file *multipart.FileHeader) (*UploadVideoResult, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !contains(util.AllowedVideoExtensions, ext) {
		return nil, util.ErrUnsupportedMediaType
	}

	lesson, err := s.LessonRepo.FindByID(tenantID, lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}

	tmp, err := os.CreateTemp("", "lesson-video-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if _, err := tmp.ReadFrom(src); err != nil {
		return nil, err
	}
	if err := tmp.Sync(); err != nil {
		return nil, err
	}

	info, err := util.GetVideoInfo(tmp.Name())
	if err != nil {
		logger.Log.Warn("video probe failed, duration left as zero",
			zap.String("lesson_id", lessonID), zap.Error(err))
		info = &util.VideoInfo{}
	}

	key := ObjectKey(tenantID, "videos", fmt.Sprintf("%s%s", lessonID, ext))
	url, err := s.Storage.UploadFile(ctx, key, tmp.Name(), util.MimeVideo+strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, err
	}

	lesson.Type = model.LessonVideo
	lesson.VideoURL = url
	lesson.VideoDuration = int(info.Duration)
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}

	// 课程还没有封面时从首个视频抓帧补一张
	if course, err := s.CourseRepo.FindByID(tenantID, lesson.CourseID); err == nil && course.Thumbnail == "" {
		if thumbURL, err := s.GenerateVideoThumbnail(tenantID, course.ID, tmp.Name()); err == nil {
			course.Thumbnail = thumbURL
			if err := s.CourseRepo.Update(course); err != nil {
				logger.Log.Warn("failed to save generated thumbnail",
					zap.String("course_id", course.ID), zap.Error(err))
			}
		} else {
			logger.Log.Warn("thumbnail generation failed",
				zap.String("course_id", course.ID), zap.Error(err))
		}
	}

	return &UploadVideoResult{
		URL:      url,
		Duration: int(info.Duration),
		Width:    info.Width,
		Height:   info.Height,
	}, nil
}

// UploadCourseThumbnail 上传课程封面图
func (s *ContentService) UploadCourseThumbnail(ctx context.Context, tenantID, courseID string, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !contains(util.AllowedImageExtensions, ext) {
		return "", util.ErrUnsupportedMediaType
	}

	course, err := s.CourseRepo.FindByID(tenantID, courseID)
	if err != nil {
		return "", util.ErrCourseNotFound
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := ObjectKey(tenantID, "thumbnails", fmt.Sprintf("%s%s", courseID, ext))
	url, err := s.Storage.Upload(ctx, key, src, file.Size, util.MimeImage+strings.TrimPrefix(ext, "."))
	if err != nil {
		return "", err
	}

	course.Thumbnail = url
	if err := s.CourseRepo.Update(course); err != nil {
		return "", err
	}
	return url, nil
}

// GenerateVideoThumbnail 从已有本地视频抓帧生成封面，仅本地存储模式可用
func (s *ContentService) GenerateVideoThumbnail(tenantID, courseID, videoPath string) (string, error) {
	thumbnailPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".jpg"
	if err := util.GenerateThumbnail(videoPath, thumbnailPath, "00:00:01"); err != nil {
		return "", err
	}
	defer os.Remove(thumbnailPath)

	key := ObjectKey(tenantID, "thumbnails", courseID+".jpg")
	return s.Storage.UploadFile(context.Background(), key, thumbnailPath, "image/jpeg")
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
