package paseto

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow-backend/models"
)

const testSecret = "YWFhYWFhYWFhYWFhYWFhYWFhYWFhYWFhYWFhYWFhYWE="

func TestNewMakerRejectsBadSecret(t *testing.T) {
	if _, err := NewMaker("bukan-base64!!!"); err == nil {
		t.Error("secret yang bukan base64 harusnya ditolak")
	}
	// 16 byte, terlalu pendek
	if _, err := NewMaker("YWFhYWFhYWFhYWFhYWFhYQ=="); err == nil {
		t.Error("secret kurang dari 32 byte harusnya ditolak")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	maker, err := NewMaker(testSecret)
	if err != nil {
		t.Fatalf("new maker: %v", err)
	}

	user := &models.User{
		ID:           primitive.NewObjectID(),
		Email:        "sarah@example.com",
		Role:         models.RoleEmployee,
		IsFirstLogin: true,
	}

	token, err := maker.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := maker.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("user_id = %s, want %s", claims.UserID.Hex(), user.ID.Hex())
	}
	if claims.Email != user.Email {
		t.Errorf("email = %q, want %q", claims.Email, user.Email)
	}
	if claims.Role != models.RoleEmployee {
		t.Errorf("role = %q, want %q", claims.Role, models.RoleEmployee)
	}
	if !claims.IsFirstLogin {
		t.Error("is_first_login harus true")
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	maker, err := NewMaker(testSecret)
	if err != nil {
		t.Fatalf("new maker: %v", err)
	}
	other, err := NewMaker("YmJiYmJiYmJiYmJiYmJiYmJiYmJiYmJiYmJiYmJiYmI=")
	if err != nil {
		t.Fatalf("new maker lain: %v", err)
	}

	token, err := maker.GenerateToken(&models.User{ID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token harus gagal divalidasi dengan kunci berbeda")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	maker, err := NewMaker(testSecret)
	if err != nil {
		t.Fatalf("new maker: %v", err)
	}
	if _, err := maker.ValidateToken("v2.local.bukantoken"); err == nil {
		t.Error("token rusak harusnya ditolak")
	}
}
