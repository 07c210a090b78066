// Package mocks provides function-field mock implementations of the
// application's service and upstream interfaces for use in tests.
//
// Each mock exposes one Fn field per interface method plus default return
// values used when the field is nil:
//
//	jwtService := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{UserID: userID}, nil
//	    },
//	}
package mocks
