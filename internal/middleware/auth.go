package middleware

import (
	"strings"

	"github.com/fermanzolido/autitos/internal/apierror"
	"github.com/fermanzolido/autitos/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ClaimsKey = "claims"

// JWTClaims are the custom claims embedded in every access token.
// ConcesionarioID is only present for dealer users.
type JWTClaims struct {
	UserID          string    `json:"user_id"`
	Username        string    `json:"username"`
	Rol             model.Rol `json:"rol"`
	ConcesionarioID *string   `json:"concesionario_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route. A missing
// or invalid token is Unauthenticated: the caller has no identity at all.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortWith(c, apierror.New(apierror.Unauthenticated, "Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			abortWith(c, apierror.New(apierror.Unauthenticated, "Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRol rejects requests whose role is not in the allowed set. The
// permission table for every operation lives in the router, built on top
// of this middleware — authorization always runs before any transaction
// opens.
func RequireRol(roles ...model.Rol) gin.HandlerFunc {
	allowed := make(map[model.Rol]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !allowed[claims.Rol] {
			abortWith(c, apierror.New(apierror.PermissionDenied, "Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// RequireConcesionario rejects dealer users whose token lacks the
// concesionario_id claim. Dealer-scoped operations cannot run without it.
// Admin and factory users pass through untouched.
func RequireConcesionario() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok {
			abortWith(c, apierror.New(apierror.Unauthenticated, "Autenticacion requerida"))
			return
		}
		if claims.Rol == model.RolDealer && (claims.ConcesionarioID == nil || *claims.ConcesionarioID == "") {
			abortWith(c, apierror.New(apierror.PermissionDenied, "El usuario dealer no tiene concesionario asignado"))
			return
		}
		c.Next()
	}
}

// GetClaims retrieves typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}

func abortWith(c *gin.Context, err *apierror.Error) {
	c.AbortWithStatusJSON(apierror.Status(err.Code), err)
}
