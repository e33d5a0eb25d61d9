// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("XDG_CONFIG_HOME")

Settings owned by filterexpr live under the FILTEREXPR_ prefix. Wrap a
Reader with NewPrefixReader to read them by their short name:

	reader := env.NewPrefixReader(&env.OSReader{})
	level := reader.Getenv("LOG_LEVEL") // reads FILTEREXPR_LOG_LEVEL

# Testing

A generated mock is available in the mocks sub-package:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().Getenv("FILTEREXPR_LOG_LEVEL").Return("debug")
*/
package env
