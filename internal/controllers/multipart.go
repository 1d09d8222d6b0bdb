package controllers

import (
	"fmt"
	"io"
	"mime/multipart"
	stdhttp "net/http"
	"strconv"

	"github.com/bionicotaku/lingo-services-admin/internal/controllers/dto"
	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/bionicotaku/lingo-services-admin/internal/services"
)

// multipartMaxMemory 控制表单解析驻留内存的上限，超出部分落临时文件。
const multipartMaxMemory = 32 << 20

// parseCreateVideoForm 将 multipart 表单解析为创建请求。
// 文件字段支持两种形态：文件 part（新上传）或 <field>_name 文本值（沿用已存对象名）。
func parseCreateVideoForm(r *stdhttp.Request) (*dto.CreateVideoRequest, error) {
	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	req := &dto.CreateVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Rating:      r.FormValue("rating"),
	}
	if v := r.FormValue("year_launched"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("year_launched: invalid number %q", v)
		}
		req.YearLaunched = int32(n)
	}
	if v := r.FormValue("duration"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("duration: invalid number %q", v)
		}
		req.Duration = int32(n)
	}
	if v := r.FormValue("opened"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("opened: invalid bool %q", v)
		}
		req.Opened = b
	}
	req.CategoriesID = formValues(r.MultipartForm, "categories_id")
	req.GenresID = formValues(r.MultipartForm, "genres_id")
	req.CastMembersID = formValues(r.MultipartForm, "cast_members_id")

	files, err := extractFileInputs(r.MultipartForm)
	if err != nil {
		return nil, err
	}
	req.Files = files
	return req, nil
}

// parseUpdateVideoForm 将 multipart 表单解析为部分更新请求。
// 仅对表单中出现的键生成字段，保持"缺省即不修改"的语义。
func parseUpdateVideoForm(r *stdhttp.Request) (*dto.UpdateVideoRequest, error) {
	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}
	form := r.MultipartForm

	req := &dto.UpdateVideoRequest{}
	if v, ok := formValue(form, "title"); ok {
		req.Title = &v
	}
	if v, ok := formValue(form, "description"); ok {
		req.Description = &v
	}
	if v, ok := formValue(form, "rating"); ok {
		req.Rating = &v
	}
	if v, ok := formValue(form, "year_launched"); ok {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("year_launched: invalid number %q", v)
		}
		year := int32(n)
		req.YearLaunched = &year
	}
	if v, ok := formValue(form, "duration"); ok {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("duration: invalid number %q", v)
		}
		duration := int32(n)
		req.Duration = &duration
	}
	if v, ok := formValue(form, "opened"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("opened: invalid bool %q", v)
		}
		req.Opened = &b
	}
	if _, ok := form.Value["categories_id"]; ok {
		req.CategoriesSet = true
		req.CategoriesID = nonEmptyValues(form.Value["categories_id"])
	}
	if _, ok := form.Value["genres_id"]; ok {
		req.GenresSet = true
		req.GenresID = nonEmptyValues(form.Value["genres_id"])
	}
	if _, ok := form.Value["cast_members_id"]; ok {
		req.CastMembersSet = true
		req.CastMembersID = nonEmptyValues(form.Value["cast_members_id"])
	}

	files, err := extractFileInputs(form)
	if err != nil {
		return nil, err
	}
	req.Files = files
	return req, nil
}

// extractFileInputs 遍历全部文件字段，文件 part 优先于 <field>_name 文本值。
func extractFileInputs(form *multipart.Form) (map[po.FileField]services.FileInput, error) {
	if form == nil {
		return nil, nil
	}
	files := make(map[po.FileField]services.FileInput)
	for _, field := range po.FileFields {
		key := string(field)
		if headers := form.File[key]; len(headers) > 0 {
			upload, err := readUpload(field, headers[0])
			if err != nil {
				return nil, err
			}
			files[field] = services.FileInput{Upload: upload}
			continue
		}
		if values := form.Value[key+"_name"]; len(values) > 0 && values[0] != "" {
			files[field] = services.FileInput{StoredName: values[0]}
		}
	}
	if len(files) == 0 {
		return nil, nil
	}
	return files, nil
}

// readUpload 读取单个文件 part；读取上限为字段限额加一字节，
// 超限 payload 交由用例层按字段限额拒绝。
func readUpload(field po.FileField, header *multipart.FileHeader) (*services.FileUpload, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: open upload: %w", field, err)
	}
	defer f.Close()

	payload, err := io.ReadAll(io.LimitReader(f, field.MaxSize()+1))
	if err != nil {
		return nil, fmt.Errorf("%s: read upload: %w", field, err)
	}
	return &services.FileUpload{
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Payload:      payload,
	}, nil
}

func formValue(form *multipart.Form, key string) (string, bool) {
	if form == nil {
		return "", false
	}
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func formValues(form *multipart.Form, key string) []string {
	if form == nil {
		return nil
	}
	values, ok := form.Value[key]
	if !ok {
		return nil
	}
	return nonEmptyValues(values)
}

func nonEmptyValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
