package service

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 증감 단위
const (
	RevenueStep     int64 = 10000
	ViewerCountStep int64 = 100
)

var koPrinter = message.NewPrinter(language.Korean)

// ParseAmount 숫자 외 문자를 지우고 정수로, 비어 있으면 0
func ParseAmount(text string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return n
}

// FormatAmount 천 단위 구분 (1234567 → "1,234,567")
func FormatAmount(n int64) string {
	return koPrinter.Sprintf("%d", n)
}

// FormatAmountField 입력란 표시용, 0 은 빈 칸
func FormatAmountField(n int64) string {
	if n == 0 {
		return ""
	}
	return FormatAmount(n)
}

// StepAmount 단위만큼 증감, 0 미만으로 내려가지 않는다
func StepAmount(current, step int64, up bool) int64 {
	if up {
		return current + step
	}
	if current-step < 0 {
		return 0
	}
	return current - step
}
