package response

import (
	"net/http"

	"personnel-api/internal/domain"
)

// KindStatus 集中管理 错误类别 -> HTTP 状态码
var KindStatus = map[domain.Kind]int{
	domain.KindUnauthenticated: http.StatusUnauthorized,
	domain.KindForbidden:       http.StatusForbidden,
	domain.KindValidation:      http.StatusBadRequest,
	domain.KindConflict:        http.StatusBadRequest,
	domain.KindInvalidID:       http.StatusBadRequest,
	domain.KindNotFound:        http.StatusNotFound,
	domain.KindInternal:        http.StatusInternalServerError,
}

// StatusOf 未登记的类别按 500 处理
func StatusOf(k domain.Kind) int {
	if s, ok := KindStatus[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}
