package fakers

import (
	"context"
	"math/rand"

	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/go-faker/faker/v4"
)

func ContactFaker() *models.Contact {
	contact := &models.Contact{
		Name:    faker.Name(),
		Email:   faker.Email(),
		Message: faker.Paragraph(),
	}
	if rand.Intn(3) > 0 {
		phone := faker.Phonenumber()
		contact.Phone = &phone
	}
	return contact
}

// SeedContacts inserts count fake contact messages.
func SeedContacts(ctx context.Context, repo repositories.ContactRepositoryImpl, count int) (int, error) {
	created := 0
	for i := 0; i < count; i++ {
		if err := repo.Create(ctx, ContactFaker()); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
