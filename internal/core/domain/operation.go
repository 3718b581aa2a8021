package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Operation is one of the closed set of operations the tool can perform.
type Operation string

const (
	// OperationBackup snapshots the package inventory into the artifact files.
	OperationBackup Operation = "backup"
)

// DefaultOperation runs when no operation is named.
const DefaultOperation = OperationBackup

// Operations lists every known operation.
var Operations = []Operation{OperationBackup}

// String returns the operation name.
func (o Operation) String() string {
	return string(o)
}

// ParseOperation resolves an operation name by exact match.
// The empty string selects DefaultOperation.
func ParseOperation(name string) (Operation, error) {
	if name == "" {
		return DefaultOperation, nil
	}
	for _, op := range Operations {
		if string(op) == name {
			return op, nil
		}
	}
	err := zerr.Wrap(ErrUnknownOperation, "no operation named "+name)
	err = zerr.With(err, "operation", name)
	return "", zerr.With(err, "known", OperationNames())
}

// OperationNames returns the known operation names joined for display.
func OperationNames() string {
	names := make([]string, 0, len(Operations))
	for _, op := range Operations {
		names = append(names, string(op))
	}
	return strings.Join(names, ", ")
}
