package main

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// changedString returns the flag value only when the user set it
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	val, _ := cmd.Flags().GetString(name)
	return &val
}

func changedInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	val, _ := cmd.Flags().GetInt(name)
	return &val
}

func changedDecimal(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	raw := changedString(cmd, name)
	if raw == nil {
		return nil, nil
	}
	d, err := parseDecimal(name, *raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func changedTime(cmd *cobra.Command, name string) (*time.Time, error) {
	raw := changedString(cmd, name)
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, usageErrorf("--%s must be an RFC 3339 timestamp: %v", name, err)
	}
	return &t, nil
}

func parseDecimal(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, usageErrorf("--%s must be a decimal number: %v", name, err)
	}
	return d, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
