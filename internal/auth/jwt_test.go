package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/khunmostz/Repair-Management-System/internal/config"
	"github.com/khunmostz/Repair-Management-System/internal/models"
)

func managerWithSecret(secret string) *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "repair-system"
	return NewJWTManager(cfg)
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := managerWithSecret("secret")
	user := &models.User{ID: 7, Username: "somchai", Role: models.RoleTechnician}

	token, err := m.GenerateToken(user)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 7 || claims.Username != "somchai" || claims.Role != models.RoleTechnician {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Issuer != "repair-system" {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := managerWithSecret("secret-a").GenerateToken(&models.User{ID: 1, Username: "u"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := managerWithSecret("secret-b").ValidateToken(token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := managerWithSecret("secret")

	claims := &Claims{
		UserID:   1,
		Username: "u",
		Role:     models.RoleRequester,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "repair-system",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.ValidateToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestValidateTokenRejectsWrongMethod(t *testing.T) {
	m := managerWithSecret("secret")

	// alg=none tokens must never validate.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Fatal("expected error for unsigned token")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := managerWithSecret("secret").ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected parse error")
	}
}
