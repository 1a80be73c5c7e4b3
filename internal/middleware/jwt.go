package middleware

import (
	"fmt"

	"shoepos/internal/common"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// OperatorClaims identifies the employee operating the register.
type OperatorClaims struct {
	jwt.RegisteredClaims
	EmployeeID int64 `json:"employee_id"`
}

// OperatorJWT validates an HS256 bearer token and places the operator's
// employee id on the request context.
func OperatorJWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(OperatorClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*OperatorClaims)
			if !ok || claims.EmployeeID <= 0 {
				return
			}
			ctx := common.WithEmployeeID(c.Request().Context(), claims.EmployeeID)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.SendUnauthorizedError(c)
		},
	})
}

// IssueOperatorToken signs claims with secret.
func IssueOperatorToken(secret string, claims OperatorClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
