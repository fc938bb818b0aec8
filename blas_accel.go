//go:build netlib

package main

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/netlib/blas/netlib"
)

// This file routes gonum's BLAS calls through the system netlib
// implementation when you build with `-tags netlib`.
func init() {
	blas64.Use(netlib.Implementation{})
}
