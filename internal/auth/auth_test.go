package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karangnongko/goatherd/internal/domain/models"
)

func TestCanManage(t *testing.T) {
	admin := models.Actor{ID: "1", Username: "boss", Role: models.AdminRole()}
	westHandler := models.Actor{ID: "2", Username: "wati", Role: models.HandlerRole(models.BarnWest)}
	eastHandler := models.Actor{ID: "3", Username: "tono", Role: models.HandlerRole(models.BarnEast)}
	broken := models.Actor{ID: "4", Username: "ghost", Role: models.ParseRole("supervisor")}

	tests := []struct {
		name  string
		actor models.Actor
		barn  models.Barn
		want  bool
	}{
		{"admin west", admin, models.BarnWest, true},
		{"admin east", admin, models.BarnEast, true},
		{"west handler own barn", westHandler, models.BarnWest, true},
		{"west handler other barn", westHandler, models.BarnEast, false},
		{"east handler own barn", eastHandler, models.BarnEast, true},
		{"east handler other barn", eastHandler, models.BarnWest, false},
		{"unknown role fails closed", broken, models.BarnWest, false},
		{"zero actor fails closed", models.Actor{}, models.BarnEast, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanManage(tc.actor, tc.barn))
		})
	}
}

func TestDefaultBarn(t *testing.T) {
	admin := models.Actor{Role: models.AdminRole()}
	assert.Equal(t, models.BarnWest, DefaultBarn(admin))

	west := models.Actor{Role: models.HandlerRole(models.BarnWest)}
	assert.Equal(t, models.BarnWest, DefaultBarn(west))

	east := models.Actor{Role: models.HandlerRole(models.BarnEast)}
	assert.Equal(t, models.BarnEast, DefaultBarn(east))
}
