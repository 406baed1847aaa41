package id

import (
	"crypto/md5"
	"io"
	"strconv"

	"github.com/gofrs/uuid"
)

// GenTraceID new normal traceID
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// TraceIDFrom stable traceID derived from text
func TraceIDFrom(text string) string {
	h := md5.New()
	_, _ = io.WriteString(h, text)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.FromBytesOrNil(sum).String()
}

// LoanTraceID trace id of one loan action, stable for the same loan, action and version
func LoanTraceID(loanID uint64, action string, version int64) string {
	return TraceIDFrom(Num2Str(loanID) + ":" + action + ":" + strconv.FormatInt(version, 10))
}

// Num2Str convert uint64 to number string
func Num2Str(id uint64) string {
	return strconv.FormatUint(id, 10)
}
