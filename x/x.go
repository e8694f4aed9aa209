// Portions Copyright 2015-2021 Dgraph Labs, Inc. are available under the Apache License v2.0.
// Portions Copyright 2022 Outcaste LLC are available under the Sustainable License v1.0.

// Package x holds small, dependency-light assertion guards for internal
// invariants, shared across the module the way outserv's own x package
// backs its posting and worker code.
package x

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// AssertTrue terminates the process via glog.Fatalf (a fatal log line with
// goroutine stacks, then exit) if b is false; it does not panic, so it
// cannot be recovered. Use it only for
// conditions that can never fail given correct code upstream of it --
// e.g. "the posting store was built with the same id count as the
// dictionary it came from" -- never for anything that can fail merely
// because the artifact on disk is corrupt; that path returns
// jsonidx.ErrCorruptIndex instead.
func AssertTrue(b bool) {
	if !b {
		glog.Fatalf("%+v", errors.Errorf("AssertTrue failed"))
	}
}

// AssertTruef is AssertTrue with a formatted message.
func AssertTruef(b bool, format string, args ...interface{}) {
	if !b {
		glog.Fatalf("%+v", errors.Errorf(format, args...))
	}
}
