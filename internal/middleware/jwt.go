package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"tablemate/internal/common"
	"tablemate/internal/models"
)

// JWTMiddleware validates the bearer token and stashes the caller's
// identity, restaurant and role into the request context. A token whose
// claims do not resolve to a principal passes signature validation but
// fails at the first context lookup.
func JWTMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(jwtSecret),
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			principal, err := principalFromClaims(token.Claims)
			if err != nil {
				return
			}
			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, principal.UserID)
			ctx = context.WithValue(ctx, common.RestaurantIDKey, principal.RestaurantID)
			ctx = context.WithValue(ctx, common.RoleKey, principal.Role)
			ctx = context.WithValue(ctx, common.PermissionsKey, principal.Permissions)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}

// ParseToken verifies an HS256 token and extracts the principal. The
// websocket handler uses it for token-in-query authentication, where the
// header-based middleware cannot run.
func ParseToken(tokenString, jwtSecret string) (*models.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return principalFromClaims(token.Claims)
}

func principalFromClaims(rawClaims jwt.Claims) (*models.Principal, error) {
	claims, ok := rawClaims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing user id in token")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid user id format")
	}

	restaurantRaw, ok := claims["restaurant_id"].(string)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing restaurant id in token")
	}
	restaurantID, err := uuid.Parse(restaurantRaw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid restaurant id format")
	}

	roleName, ok := claims["role"].(string)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing role in token")
	}
	role, ok := models.RoleFromName(roleName)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unknown role in token")
	}

	var permissions []string
	if rawPerms, ok := claims["permissions"].([]interface{}); ok {
		for _, p := range rawPerms {
			if s, ok := p.(string); ok {
				permissions = append(permissions, s)
			}
		}
	}

	return &models.Principal{
		UserID:       userID,
		RestaurantID: restaurantID,
		Role:         role,
		Permissions:  permissions,
	}, nil
}
