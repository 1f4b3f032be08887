package attendance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"LMS-backend/internal/platform/auth"
	"LMS-backend/internal/platform/i18n"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/attendances/users/:lms_user_id", h.GetAttendanceManagement)
	r.GET("/attendances/users/:lms_user_id/form", h.GetAttendanceForm)
	r.GET("/attendances/not-entered/count", h.GetNotEnteredCount)
	r.POST("/attendances/punch/check", h.PunchCheck)
	r.POST("/attendances/punch/in", h.PunchIn)
	r.POST("/attendances/punch/out", h.PunchOut)
	r.PUT("/attendances", h.Reconcile)
}

func toHTTPStatus(err error) int {
	var de *DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case ErrCodeAuthorization:
			return http.StatusForbidden
		case ErrCodeAlreadyPunched:
			return http.StatusConflict
		case ErrCodeNotFound:
			return http.StatusNotFound
		case ErrCodeNotWorkDay, ErrCodeMissingClockIn, ErrCodeInvalidTimeRange,
			ErrCodeDateParse, ErrCodeInvalidArgument:
			return http.StatusBadRequest
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// エラー応答。カタログキーを持つ検証エラーはロケールに応じた文言で返す。
func writeError(c *gin.Context, err error) {
	var de *DomainError
	if errors.As(err, &de) {
		msg := de.Message
		if de.MsgID != "" {
			msg = i18n.T(c.Request.Context(), de.MsgID)
		}
		c.JSON(toHTTPStatus(err), gin.H{"code": de.Code, "message": msg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"code": ErrCodeInternal, "message": "internal error"})
}

// 認証済みクレームから操作主体を組み立てる
func actorFrom(c *gin.Context) Actor {
	return Actor{
		LMSUserID: c.GetUint64(auth.CtxLMSUserIDKey),
		AccountID: c.GetUint64(auth.CtxAccountIDKey),
		CourseID:  c.GetUint64(auth.CtxCourseIDKey),
		Role:      c.GetString(auth.CtxRoleKey),
	}
}

// GetAttendanceManagement: 勤怠一覧。台帳は (lms_user_id, training_date) キーで
// コース横断に一人分を持つため、パスはユーザのみで引く。コースは表示では使わず、
// 打刻・一括編集時の定刻判定でのみ参照する。
func (h *Handler) GetAttendanceManagement(c *gin.Context) {
	lmsUserID, err := strconv.ParseUint(c.Param("lms_user_id"), 10, 64)
	if err != nil || lmsUserID == 0 {
		writeError(c, NewInvalidArgumentError("invalid lms_user_id"))
		return
	}
	res, err := h.svc.GetAttendanceManagement(c.Request.Context(), lmsUserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetAttendanceForm(c *gin.Context) {
	lmsUserID, err := strconv.ParseUint(c.Param("lms_user_id"), 10, 64)
	if err != nil || lmsUserID == 0 {
		writeError(c, NewInvalidArgumentError("invalid lms_user_id"))
		return
	}
	list, err := h.svc.GetAttendanceManagement(c.Request.Context(), lmsUserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.BuildAttendanceForm(lmsUserID, list))
}

func (h *Handler) GetNotEnteredCount(c *gin.Context) {
	actor := actorFrom(c)
	n, err := h.svc.NotEnteredCount(c.Request.Context(), actor.LMSUserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NotEnteredCountResponse{Count: n})
}

// PunchCheck: 打刻前チェックのみ（更新しない）。?type=1|2
func (h *Handler) PunchCheck(c *gin.Context) {
	punchType, err := strconv.Atoi(c.DefaultQuery("type", "0"))
	if err != nil {
		writeError(c, NewInvalidArgumentError("invalid punch type"))
		return
	}
	if err := h.svc.PunchCheck(c.Request.Context(), actorFrom(c), punchType); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) PunchIn(c *gin.Context) {
	msgID, err := h.svc.PunchIn(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, PunchResponse{Message: i18n.T(c.Request.Context(), msgID)})
}

func (h *Handler) PunchOut(c *gin.Context) {
	msgID, err := h.svc.PunchOut(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, PunchResponse{Message: i18n.T(c.Request.Context(), msgID)})
}

func (h *Handler) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, NewInvalidArgumentError("invalid json"))
		return
	}
	msgID, err := h.svc.Reconcile(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, PunchResponse{Message: i18n.T(c.Request.Context(), msgID)})
}
