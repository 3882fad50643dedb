package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultVehicleType is used when a vehicle is registered without a type label.
const DefaultVehicleType = "4 chỗ"

// defaultCapacity applies when a type label carries no leading number.
const defaultCapacity = 4

// Vehicle is a car in the fleet roster.
type Vehicle struct {
	ID           string `json:"id"`
	Model        string `json:"model"`
	Type         string `json:"type"` // free-text capacity label, e.g. "7 chỗ"
	LicensePlate string `json:"licensePlate"`
}

// Capacity returns the seat count encoded at the start of the type label.
func (v Vehicle) Capacity() int {
	label := strings.TrimSpace(v.Type)
	end := strings.IndexFunc(label, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(label)
	}
	n, err := strconv.Atoi(label[:end])
	if err != nil || n <= 0 {
		return defaultCapacity
	}
	return n
}

// Info formats the vehicle the way assignments display it.
func (v Vehicle) Info() string {
	return v.Model + " (" + v.LicensePlate + ")"
}
