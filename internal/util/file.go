package util

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ValidateMimeType 深度校验文件 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// ValidateImageFile 上传前校验大小、扩展名和文件内容，返回探测到的 MIME 类型
func ValidateImageFile(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageSize {
		return "", fmt.Errorf("%w: file is %d bytes", ErrInvalidImage, file.Size)
	}
	if !IsAllowedImageExt(file.Filename) {
		return "", fmt.Errorf("%w: unsupported extension %q", ErrInvalidImage, filepath.Ext(file.Filename))
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := ValidateMimeType(src, []string{MimeImage})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return mimeType, nil
}

// IsAllowedImageExt 仅检查扩展名，内容由 ValidateMimeType 再校验
func IsAllowedImageExt(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range AllowedImageExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// QuestionImageKey 生成唯一的题目图片存储路径
func QuestionImageKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return QuestionImageDir + "/question-" + uuid.New().String() + ext
}
