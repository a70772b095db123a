package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateLoanNumber generates a unique loan reference number
func GenerateLoanNumber() string {
	return referenceNumber("LN")
}

// GenerateApplicationNumber generates a unique application reference number
func GenerateApplicationNumber() string {
	return referenceNumber("APP")
}

// GeneratePaymentNumber generates a unique payment reference number
func GeneratePaymentNumber() string {
	return referenceNumber("PAY")
}

// referenceNumber builds a reference of the form PREFIX-<ts36>-<rand>,
// e.g. LN-LX2K9A0-7F3C. The timestamp keeps references roughly sortable;
// the random suffix guards against same-millisecond collisions.
func referenceNumber(prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("%s-%s-%s", prefix, ts, random)
}
