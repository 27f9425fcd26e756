package ecode

import "errors"

// User-facing messages in the client's fixed display locale (Thai).
// Backend-provided messages take precedence; these are fallbacks only.
const (
	loginFailedMsg  = "เกิดข้อผิดพลาดในการเข้าสู่ระบบ"
	networkMsg      = "การเชื่อมต่อล้มเหลว กรุณาลองใหม่อีกครั้ง"
	timeoutMsg      = "การเชื่อมต่อหมดเวลา กรุณาลองใหม่อีกครั้ง"
	unauthorizedMsg = "เซสชันหมดอายุ กรุณาเข้าสู่ระบบใหม่"
	unknownMsg      = "เกิดข้อผิดพลาดที่ไม่ทราบสาเหตุ"
)

// LoginFailed returns the localized login failure fallback
func LoginFailed() string {
	return loginFailedMsg
}

// Unknown returns the localized generic fallback
func Unknown() string {
	return unknownMsg
}

// UserMessage resolves an error to a user-facing localized string.
// An *Error carrying a backend-supplied message wins; otherwise the
// kind's fallback applies.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return unknownMsg
	}
	switch e.Kind {
	case Network:
		return networkMsg
	case Timeout:
		return timeoutMsg
	case Unauthorized:
		return unauthorizedMsg
	case Validation, Store, Decode, Backend:
		if e.Message != "" {
			return e.Message
		}
		return unknownMsg
	}
	return unknownMsg
}
