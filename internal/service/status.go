// Package service renders domain results into the pawmatch.v1 wire types.
package service

import (
	"time"

	svcErr "github.com/oggyb/pawmatch/internal/errors"
	pb "github.com/oggyb/pawmatch/internal/proto/pawmatch"
)

// OK is the status of a successful call.
func OK() *pb.Status {
	return &pb.Status{Ok: true}
}

// Fail renders a domain error into a result status. Storage details never reach the client.
func Fail(err error) *pb.Status {
	code := svcErr.CodeOf(err)
	msg := svcErr.MessageOf(err)
	if code == svcErr.CodePersistence {
		msg = "Something went wrong, please try again"
	}
	return &pb.Status{Ok: false, Error: string(code), Message: msg}
}

// Unix renders a timestamp the way every response carries it: milliseconds since epoch.
func Unix(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}
	return uint64(t.UnixMilli())
}
