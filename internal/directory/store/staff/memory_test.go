package staff

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"amlengine/internal/directory/models"
	id "amlengine/pkg/domain"
	"amlengine/pkg/platform/sentinel"
)

type StaffStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *StaffStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestStaffStoreSuite(t *testing.T) {
	suite.Run(t, new(StaffStoreSuite))
}

func (s *StaffStoreSuite) newStaff(role models.StaffRole) *models.Staff {
	return &models.Staff{
		ID:         id.StaffID(uuid.New()),
		UserID:     id.UserID(uuid.New()),
		Name:       "Compliance Officer",
		Role:       role,
		Businesses: []string{"GCMC"},
		IsActive:   true,
	}
}

func (s *StaffStoreSuite) TestFindByUserID() {
	s.Run("resolves user to staff", func() {
		st := s.newStaff(models.RoleAdmin)
		s.Require().NoError(s.store.Create(s.ctx, st))

		found, err := s.store.FindByUserID(s.ctx, st.UserID)
		s.Require().NoError(err)
		s.Equal(st.ID, found.ID)
		s.True(found.IsAdmin())
	})

	s.Run("unknown user", func() {
		_, err := s.store.FindByUserID(s.ctx, id.UserID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("one staff record per user", func() {
		st := s.newStaff(models.RoleStaff)
		s.Require().NoError(s.store.Create(s.ctx, st))
		dup := s.newStaff(models.RoleStaff)
		dup.UserID = st.UserID
		s.ErrorIs(s.store.Create(s.ctx, dup), sentinel.ErrConflict)
	})
}

func (s *StaffStoreSuite) TestFindByIDs() {
	a := s.newStaff(models.RoleStaff)
	b := s.newStaff(models.RoleAdmin)
	s.Require().NoError(s.store.Create(s.ctx, a))
	s.Require().NoError(s.store.Create(s.ctx, b))

	found, err := s.store.FindByIDs(s.ctx, []id.StaffID{a.ID, b.ID, id.StaffID(uuid.New())})
	s.Require().NoError(err)
	s.Len(found, 2)
	s.Equal(b.Name, found[b.ID].Name)
}
