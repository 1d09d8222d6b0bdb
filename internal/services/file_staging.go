package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"

	"github.com/google/uuid"
)

// stagedUpload 是暂存阶段产出的一条待上传记录：
// 载荷已与目标对象名绑定，事务提交后由编排器写入 Blob 存储。
type stagedUpload struct {
	Field       po.FileField
	Name        string
	ContentType string
	Payload     []byte
}

// stageFiles 将属性包中的原始文件载荷与标量持久化路径分离。
//
// 对每个出现的文件字段：
//   - 携带原始载荷的，生成抗碰撞对象名，返回 字段→对象名 赋值与暂存记录；
//   - 仅携带对象名字符串的，原样写入赋值且不产生上传（支持幂等重提交）。
//
// 纯数据变换，无任何 I/O，可安全在开启事务之前调用。
// 返回的赋值集中不再含任何原始载荷。
func stageFiles(files map[po.FileField]FileInput, nameFn func(original string) string) (map[po.FileField]string, []stagedUpload, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}
	if nameFn == nil {
		nameFn = GenerateFileName
	}

	assignments := make(map[po.FileField]string, len(files))
	staged := make([]stagedUpload, 0, len(files))

	// 按固定字段顺序遍历，保证暂存列表顺序确定
	for _, field := range po.FileFields {
		input, ok := files[field]
		if !ok {
			continue
		}
		switch {
		case input.Upload != nil:
			if max := field.MaxSize(); max > 0 && int64(len(input.Upload.Payload)) > max {
				return nil, nil, fmt.Errorf("file %s exceeds max size %d bytes", field, max)
			}
			name := nameFn(input.Upload.OriginalName)
			assignments[field] = name
			staged = append(staged, stagedUpload{
				Field:       field,
				Name:        name,
				ContentType: input.Upload.ContentType,
				Payload:     input.Upload.Payload,
			})
		case input.StoredName != "":
			assignments[field] = input.StoredName
		default:
			return nil, nil, fmt.Errorf("file %s: neither payload nor stored name provided", field)
		}
	}

	// 拒绝无法识别的文件字段，避免把原始载荷漏进持久化路径
	for field := range files {
		if _, ok := assignments[field]; !ok {
			return nil, nil, fmt.Errorf("unrecognized file field: %s", field)
		}
	}

	return assignments, staged, nil
}

// GenerateFileName 生成抗碰撞对象名：随机 UUID + 原始扩展名（统一小写）。
func GenerateFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}
