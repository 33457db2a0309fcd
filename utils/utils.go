package utils

import (
	"context"
	rndm "math/rand"
	"os"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

func GetUUID() string {
	return uuid.New().String()
}

// --- Directory Helper ---

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// --- Mongo Helpers ---

// FindAndDecode runs a Find with the given filter and decodes every
// matching document. Returns an empty (non-nil) slice when nothing matches.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter any) ([]T, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
