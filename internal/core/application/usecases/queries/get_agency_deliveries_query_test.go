package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAgencyDeliveriesQuery_Valid(t *testing.T) {
	agencyID := kernel.NewUUID()
	query, err := queries.NewGetAgencyDeliveriesQuery(agencyID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.AgencyID().IsEqual(agencyID))
}

func TestNewGetAgencyDeliveriesQuery_EmptyAgencyID(t *testing.T) {
	_, err := queries.NewGetAgencyDeliveriesQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetAgencyDeliveriesQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAgencyDeliveriesQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAgencyDeliveriesQueryIsNotConstructed)
}
