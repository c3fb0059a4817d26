package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vietanh2810/dining-pos-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/dining-pos-api/internal/domain"
	"github.com/vietanh2810/dining-pos-api/internal/pkg/jwthelper"
)

const (
	GuestTokenHeader = "X-Guest-Token"

	accountIDKey = "accountID"
	guestIDKey   = "guestID"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenStr := bearerToken(ctx)
		if tokenStr == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing bearer token")))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenStr)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))
			return
		}

		ctx.Set(accountIDKey, claims.AccountID)
		ctx.Next()
	}
}

// IdentifyCaller reads the optional bearer token and guest token. A request carrying
// neither is served as anonymous, a malformed one is rejected.
func (a *Authenticator) IdentifyCaller() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tokenStr := bearerToken(ctx); tokenStr != "" {
			claims, err := jwthelper.ParseToken(a.signingKey, tokenStr)
			if err != nil {
				response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))
				return
			}
			ctx.Set(accountIDKey, claims.AccountID)
		}

		if raw := strings.TrimSpace(ctx.GetHeader(GuestTokenHeader)); raw != "" {
			guestID, err := uuid.Parse(raw)
			if err != nil {
				response.RenderErr(ctx, response.ErrBadRequest(errors.New("malformed guest token")))
				return
			}
			ctx.Set(guestIDKey, guestID)
		}

		ctx.Next()
	}
}

// CallerFromContext returns the identity set by IdentifyCaller or VerifyJWT.
func CallerFromContext(ctx *gin.Context) domain.Caller {
	var caller domain.Caller
	if v, ok := ctx.Get(accountIDKey); ok {
		id := v.(uint)
		caller.AccountID = &id
	}
	if v, ok := ctx.Get(guestIDKey); ok {
		id := v.(uuid.UUID)
		caller.GuestID = &id
	}

	return caller
}

// bearerToken reads the Authorization header, falling back to the token query
// parameter used by websocket clients.
func bearerToken(ctx *gin.Context) string {
	if h := ctx.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}

	return ctx.Query("token")
}
