// Package types provides core data types shared across the fsclean
// operations: operation identifiers, naming styles, and size formatting
// helpers.
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Operation identifies one of the cleanup operations.
type Operation string

const (
	// OpNaming is the filename consistency operation.
	OpNaming Operation = "naming"

	// OpEmpties is the empty file and directory removal operation.
	OpEmpties Operation = "empties"

	// OpDuplicates is the duplicate file removal operation.
	OpDuplicates Operation = "duplicates"
)

// OperationOrder is the fixed execution order when multiple operations
// are requested.
var OperationOrder = []Operation{OpDuplicates, OpEmpties, OpNaming}

// ErrUnknownOperation indicates an unrecognized operation name.
var ErrUnknownOperation = errors.New("unknown operation")

// ParseOperation parses an operation name, case-insensitively.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(OpNaming):
		return OpNaming, nil
	case string(OpEmpties):
		return OpEmpties, nil
	case string(OpDuplicates):
		return OpDuplicates, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
}

// ParseOperations parses a comma-separated operation list. Unknown names
// produce an error per name; valid names are still returned so the caller
// can warn and continue with the rest.
func ParseOperations(s string) ([]Operation, []error) {
	var (
		ops  []Operation
		errs []error
		seen = map[Operation]bool{}
	)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		op, err := ParseOperation(part)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !seen[op] {
			seen[op] = true
			ops = append(ops, op)
		}
	}
	return ops, errs
}

// FormatSize converts a size in bytes to a human-readable string using
// binary (IEC) units.
func FormatSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}
