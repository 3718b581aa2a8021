package ports

// Hasher computes content digests.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// Sum returns the hex digest of data.
	Sum(data []byte) string
}
