package api

import "testing"

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "零", amount: 0, expected: "0"},
		{name: "三位以内", amount: 999, expected: "999"},
		{name: "千", amount: 1000, expected: "1,000"},
		{name: "初始余额", amount: 100000, expected: "1,00,000"},
		{name: "十万以上", amount: 1234567, expected: "12,34,567"},
		{name: "千万", amount: 10000000, expected: "1,00,00,000"},
		{name: "带小数", amount: 1234567.5, expected: "12,34,567.5"},
		{name: "两位小数", amount: 999.25, expected: "999.25"},
		{name: "负数", amount: -100000, expected: "-1,00,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatINR(tt.amount); got != tt.expected {
				t.Errorf("formatINR(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}
