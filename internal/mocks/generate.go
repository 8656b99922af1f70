// Package mocks provides mock implementations for testing the foodcart services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port and repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByEmail(gomock.Any(), "a@b.com").Return(user, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods: Create, GetByEmail, GetByID
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/target/foodcart/internal/core UserRepository

// Generate mocks for the auth ports.
// This creates MockAuthGateway, MockPasswordHasher, MockTokenIssuer and MockTokenStore.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_ports_mock.go github.com/target/foodcart/internal/ports AuthGateway,PasswordHasher,TokenIssuer,TokenStore
