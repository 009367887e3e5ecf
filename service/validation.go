package service

import (
	"math"
)

func checkAmount(field string, v, limit float64) error {
	if math.IsNaN(v) || v < 0 {
		return invalid(ErrCodeInvalidAmount, field, "must not be negative")
	}
	if v > limit {
		return invalid(ErrCodeLimitExceeded, field, "exceeds the maximum of %.2f", limit)
	}
	return nil
}

func checkPositiveAmount(field string, v, limit float64) error {
	if !(v > 0) {
		return invalid(ErrCodeInvalidAmount, field, "must be greater than zero")
	}
	return checkAmount(field, v, limit)
}

func checkRate(field string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return invalid(ErrCodeInvalidRate, field, "must not be negative")
	}
	if v > MaxInterestRate {
		return invalid(ErrCodeLimitExceeded, field, "exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	return nil
}

func checkYears(field string, v, limit int) error {
	if v <= 0 {
		return invalid(ErrCodeInvalidTenure, field, "must be at least one year")
	}
	if v > limit {
		return invalid(ErrCodeLimitExceeded, field, "exceeds the maximum of %d years", limit)
	}
	return nil
}

func checkEnum[T ~string](field string, v T, allowed ...T) error {
	if v == "" {
		return nil
	}
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return invalid(ErrCodeInvalidEnum, field, "must be one of %v", allowed)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func roundTo2Decimals(value float64) float64 {
	scaled := value * 100
	if math.IsInf(scaled, 0) {
		return value
	}
	return math.Round(scaled) / 100
}
