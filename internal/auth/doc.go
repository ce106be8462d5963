// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

// Package auth provides authentication primitives for QuizForge.
//
// # Domain Types
//
// Domain types (User, Session) should be created using their respective
// constructors:
//   - NewUser - creates a User with validated username and email
//   - NewSession - creates a Session with validated user id and expiry
//
// Direct struct initialization bypasses validation and may create invalid
// state. Repository implementations receive pre-validated types from these
// constructors.
//
// # Services
//
// Service types coordinate domain operations:
//   - Service - login, logout, session resolution
//   - RegisterService - account creation
//
// Services are created with New*Service constructors that validate
// dependencies.
package auth
