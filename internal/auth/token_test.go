package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/bloghub/blog-management/internal"
)

var _ = ginkgo.Describe("TokenService", func() {
	var (
		tokens *TokenService
		user   *User
		admin  *User
	)

	ginkgo.BeforeEach(func() {
		var err error
		tokens, err = NewTokenService(testSecret, 15*time.Minute, time.Hour, 7*24*time.Hour)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		user = &User{ID: 7, Email: "writer@x.com", Permissions: []string{PermissionReadPosts, PermissionCreatePosts}}
		admin = &User{ID: 8, Email: "root@x.com", Permissions: []string{PermissionAdmin}}
	})

	ginkgo.Describe("construction", func() {
		ginkgo.It("rejects an empty secret", func() {
			_, err := NewTokenService("", 0, 0, 0)
			gomega.Expect(err).To(gomega.MatchError("JWT secret not configured"))
		})

		ginkgo.It("rejects a whitespace-only secret", func() {
			_, err := NewTokenService("   ", 0, 0, 0)
			gomega.Expect(err).To(gomega.MatchError("JWT secret not configured"))
		})

		ginkgo.It("applies default lifetimes for zero durations", func() {
			ts, err := NewTokenService("secret", 0, 0, 0)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ts.AccessTTL).To(gomega.Equal(15 * time.Minute))
			gomega.Expect(ts.AdminTTL).To(gomega.Equal(time.Hour))
			gomega.Expect(ts.RefreshTTL).To(gomega.Equal(7 * 24 * time.Hour))
		})
	})

	ginkgo.Describe("issuing", func() {
		ginkgo.It("embeds identity, permission snapshot and token type", func() {
			signed, err := tokens.IssueAccessToken(user)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokens.Verify(signed)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal(int64(7)))
			gomega.Expect(claims.Email).To(gomega.Equal("writer@x.com"))
			gomega.Expect(claims.Permissions).To(gomega.ConsistOf(PermissionReadPosts, PermissionCreatePosts))
			gomega.Expect(claims.TokenType).To(gomega.Equal(TokenTypeAccess))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(15*time.Minute), time.Minute))
		})

		ginkgo.It("issues refresh tokens with the long lifetime", func() {
			signed, err := tokens.IssueRefreshToken(user)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokens.Verify(signed)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.TokenType).To(gomega.Equal(TokenTypeRefresh))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(7*24*time.Hour), time.Minute))
		})

		ginkgo.It("issues distinct tokens on back-to-back calls for the same user", func() {
			first, err := tokens.IssueRefreshToken(user)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			second, err := tokens.IssueRefreshToken(user)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// iat and exp land in the same second here; only jti separates them
			gomega.Expect(second).ToNot(gomega.Equal(first))

			firstClaims, err := tokens.Verify(first)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			secondClaims, err := tokens.Verify(second)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(secondClaims.ID).ToNot(gomega.Equal(firstClaims.ID))
		})

		ginkgo.It("refuses an admin token for a non-admin user before signing", func() {
			_, err := tokens.IssueAdminToken(user)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrAdminRequired))
		})

		ginkgo.It("issues admin tokens for admin users", func() {
			signed, err := tokens.IssueAdminToken(admin)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokens.Verify(signed)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.TokenType).To(gomega.Equal(TokenTypeAdmin))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(time.Hour), time.Minute))
		})
	})

	ginkgo.Describe("verification", func() {
		ginkgo.It("tags expired tokens", func() {
			expired := signTestToken(testSecret, 7, "writer@x.com", TokenTypeAccess, nil, time.Now().Add(-time.Minute))
			_, err := tokens.Verify(expired)
			gomega.Expect(err).To(gomega.MatchError(ErrTokenExpired))
		})

		ginkgo.It("treats a token expiring exactly now as expired", func() {
			boundary := signTestToken(testSecret, 7, "writer@x.com", TokenTypeAccess, nil, time.Now())
			_, err := tokens.Verify(boundary)
			gomega.Expect(err).To(gomega.MatchError(ErrTokenExpired))
		})

		ginkgo.It("tags tokens that are not yet valid", func() {
			claims := &Claims{
				UserID:    7,
				Email:     "writer@x.com",
				TokenType: TokenTypeAccess,
				RegisteredClaims: jwt.RegisteredClaims{
					NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
					IssuedAt:  jwt.NewNumericDate(time.Now()),
				},
			}
			premature, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokens.Verify(premature)
			gomega.Expect(err).To(gomega.MatchError(ErrTokenNotYetValid))
		})

		ginkgo.It("tags malformed tokens", func() {
			_, err := tokens.Verify("not.a.jwt")
			gomega.Expect(err).To(gomega.MatchError(ErrTokenMalformed))
		})

		ginkgo.It("tags tokens signed with a different secret", func() {
			foreign := signTestToken("other-secret", 7, "writer@x.com", TokenTypeAccess, nil, time.Now().Add(time.Hour))
			_, err := tokens.Verify(foreign)
			gomega.Expect(err).To(gomega.MatchError(ErrTokenMalformed))
		})
	})

	ginkgo.Describe("claim helpers", func() {
		ginkgo.It("checks permission membership on the snapshot", func() {
			signed, _ := tokens.IssueAccessToken(user)
			claims, _ := tokens.Verify(signed)

			gomega.Expect(tokens.HasPermission(claims, PermissionReadPosts)).To(gomega.BeTrue())
			gomega.Expect(tokens.HasPermission(claims, PermissionDeletePosts)).To(gomega.BeFalse())
		})

		ginkgo.It("checks token type equality", func() {
			signed, _ := tokens.IssueRefreshToken(user)
			claims, _ := tokens.Verify(signed)

			gomega.Expect(tokens.IsType(claims, TokenTypeRefresh)).To(gomega.BeTrue())
			gomega.Expect(tokens.IsType(claims, TokenTypeAccess)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("ExtractTokenFromHeader", func() {
		ginkgo.It("accepts the exact Bearer form", func() {
			gomega.Expect(ExtractTokenFromHeader("Bearer abc.def.ghi")).To(gomega.Equal("abc.def.ghi"))
		})

		ginkgo.It("rejects every other shape", func() {
			for _, header := range []string{"", "Basic xyz", "bearer abc", "Bearer", "Bearer ", "Bearer a b", "abc.def.ghi"} {
				gomega.Expect(ExtractTokenFromHeader(header)).To(gomega.BeEmpty(), "header %q", header)
			}
		})
	})
})
