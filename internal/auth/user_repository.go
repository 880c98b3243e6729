package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dongju93/cocktail-maker/internal/infrastructure/mongodb"
)

// usersCollection is the document store collection holding user accounts.
const usersCollection = "users"

// UserRepository is a MongoDB-backed credential store.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a repository over the users collection.
func NewUserRepository(client *mongodb.Client) *UserRepository {
	return &UserRepository{collection: client.Collection(usersCollection)}
}

// EnsureIndexes creates the unique index on user_id. Safe to call on
// every startup; index creation is idempotent.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating users index: %w", err)
	}
	return nil
}

// SignUp derives credentials for the registration and inserts the account.
// Returns ErrUserExists if the user_id is already taken.
func (r *UserRepository) SignUp(ctx context.Context, reg Registration) error {
	derived, err := DeriveKey(reg.Password, nil)
	if err != nil {
		return fmt.Errorf("deriving password hash: %w", err)
	}

	user := User{
		UserID:       reg.UserID,
		PasswordHash: derived.EncryptedPassword,
		Salt:         derived.Salt,
		Email:        reg.Email,
		Roles:        reg.Roles,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Address:      reg.Address,
		PhoneNumber:  reg.PhoneNumber,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// Authenticate verifies the login credentials and returns the user's roles.
//
// An unknown user and a wrong password both yield ErrInvalidCredentials so
// the response does not reveal which accounts exist.
func (r *UserRepository) Authenticate(ctx context.Context, login Login) ([]Role, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"user_id": login.UserID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	match, err := VerifyPassword(login.Password, user.PasswordHash, user.Salt)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	return user.Roles, nil
}

// GetRoles returns the current roles of a user account.
// Returns ErrUserNotFound if the account does not exist.
func (r *UserRepository) GetRoles(ctx context.Context, userID string) ([]Role, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching user roles: %w", err)
	}
	return user.Roles, nil
}
