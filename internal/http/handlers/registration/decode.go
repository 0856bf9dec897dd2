package registration

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/referral-portal/internal/models"
)

const (
	maxMemory     = 16 << 20
	maxImageBytes = 10 << 20
)

// decode читает заявку из JSON (её собирает скрипт страницы) или из
// multipart-формы, тогда изображения кодируются в base64 здесь.
func decode(r *http.Request) (models.Registration, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return decodeMultipart(r)
	}

	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		return models.Registration{}, fmt.Errorf("decode json: %w", err)
	}
	return reg, nil
}

func decodeMultipart(r *http.Request) (models.Registration, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return models.Registration{}, fmt.Errorf("parse multipart: %w", err)
	}

	reg := models.Registration{
		UserID:   r.FormValue("userId"),
		Name:     r.FormValue("name"),
		Phone:    r.FormValue("phone"),
		Referrer: r.FormValue("referrer"),
		Address:  r.FormValue("address"),
	}

	var err error
	if reg.Lat, err = parseCoord(r.FormValue("lat")); err != nil {
		return models.Registration{}, fmt.Errorf("lat: %w", err)
	}
	if reg.Lng, err = parseCoord(r.FormValue("lng")); err != nil {
		return models.Registration{}, fmt.Errorf("lng: %w", err)
	}
	if reg.StoreImage, err = fileBase64(r.MultipartForm, "storeImage"); err != nil {
		return models.Registration{}, err
	}
	if reg.IDCardImage, err = fileBase64(r.MultipartForm, "idCardImage"); err != nil {
		return models.Registration{}, err
	}
	return reg, nil
}

func parseCoord(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// fileBase64 отсутствующий файл даёт пустую строку, её поймает проверка полей.
func fileBase64(form *multipart.Form, field string) (string, error) {
	files := form.File[field]
	if len(files) == 0 {
		return "", nil
	}
	f, err := files[0].Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", field, err)
	}
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("%s exceeds %d bytes", field, maxImageBytes)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// stripDataURL убирает префикс data:<mime>;base64, сервис ждёт чистый base64.
func stripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return s
}
