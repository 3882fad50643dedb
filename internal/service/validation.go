package service

import (
	"strings"
	"time"

	"xeghep/internal/domain"
)

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func validSchedule(date, clock string) bool {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return false
	}
	if _, err := time.Parse(domain.TimeLayout, clock); err != nil {
		return false
	}
	return true
}
