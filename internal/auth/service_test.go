package auth_test

import (
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/empmanager/personnel-management/internal/auth"
)

type mockAuthRepository struct {
	principals map[string]*auth.Principal
	hashes     map[int64]string
	updated    map[int64]string
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		principals: make(map[string]*auth.Principal),
		hashes:     make(map[int64]string),
		updated:    make(map[int64]string),
	}
}

func (m *mockAuthRepository) add(p *auth.Principal, password string) {
	hash, err := auth.HashPassword(password, 4)
	Expect(err).NotTo(HaveOccurred())
	m.principals[p.Username] = p
	m.hashes[p.ID] = hash
}

func (m *mockAuthRepository) GetPrincipalByUsername(username string) (*auth.Principal, string, error) {
	p, ok := m.principals[username]
	if !ok {
		return nil, "", errors.New("user not found")
	}
	return p, m.hashes[p.ID], nil
}

func (m *mockAuthRepository) GetPrincipalByID(userID int64) (*auth.Principal, error) {
	for _, p := range m.principals {
		if p.ID == userID {
			return p, nil
		}
	}
	return nil, errors.New("user not found")
}

func (m *mockAuthRepository) GetPasswordHash(userID int64) (string, error) {
	hash, ok := m.hashes[userID]
	if !ok {
		return "", errors.New("user not found")
	}
	return hash, nil
}

func (m *mockAuthRepository) UpdatePassword(userID int64, passwordHash string) error {
	m.hashes[userID] = passwordHash
	m.updated[userID] = passwordHash
	return nil
}

var _ = Describe("AuthService", func() {
	var (
		svc  *auth.Service
		repo *mockAuthRepository
	)

	BeforeEach(func() {
		repo = newMockAuthRepository()
		tokens := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", time.Minute, time.Hour)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc = auth.NewService(repo, tokens, 4, logger)

		repo.add(&auth.Principal{
			ID: 1, Username: "admin", Email: "admin@example.com",
			FirstName: "Ada", LastName: "Admin",
			IsSuperuser: true, IsStaff: true, IsActive: true,
		}, "password")
		repo.add(&auth.Principal{
			ID: 3, Username: "sodeci", Email: "sodeci@example.com", IsActive: true,
			CompanyProfile: &auth.CompanyProfile{DepartmentID: 1, DepartmentName: "SODECI"},
		}, "password")
		repo.add(&auth.Principal{
			ID: 7, Username: "gone", Email: "gone@example.com", IsActive: false,
		}, "password")
	})

	Describe("Authenticate", func() {
		It("returns tokens and the resolved role payload", func() {
			resp, err := svc.Authenticate(auth.LoginDTO{Username: "admin", Password: "password"})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Access).NotTo(BeEmpty())
			Expect(resp.Refresh).NotTo(BeEmpty())
			Expect(resp.User.Role).To(Equal(auth.RoleAdmin))
			Expect(resp.User.Name).To(Equal("Ada Admin"))
			Expect(resp.User.ManagedDirections).To(BeEmpty())
			Expect(resp.User.ManagedDepartment).To(BeNil())
		})

		It("carries the managed department for enterprise accounts", func() {
			resp, err := svc.Authenticate(auth.LoginDTO{Username: "sodeci", Password: "password"})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.User.Role).To(Equal(auth.RoleEnterprise))
			Expect(resp.User.ManagedDepartment).NotTo(BeNil())
			Expect(resp.User.ManagedDepartment.Name).To(Equal("SODECI"))
		})

		It("rejects a wrong password", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Username: "admin", Password: "nope"})

			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown username the same way", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Username: "ghost", Password: "password"})

			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects inactive accounts after the password check", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Username: "gone", Password: "password"})

			Expect(err).To(MatchError(auth.ErrUserInactive))
		})
	})

	Describe("RefreshTokens", func() {
		It("rotates both tokens for an active account", func() {
			resp, err := svc.Authenticate(auth.LoginDTO{Username: "admin", Password: "password"})
			Expect(err).NotTo(HaveOccurred())

			tokens, err := svc.RefreshTokens(resp.Refresh)

			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("rejects an access token used for refresh", func() {
			resp, err := svc.Authenticate(auth.LoginDTO{Username: "admin", Password: "password"})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.RefreshTokens(resp.Access)

			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("ChangePassword", func() {
		It("verifies the current password before storing the new hash", func() {
			err := svc.ChangePassword(1, auth.ChangePasswordDTO{
				OldPassword: "password",
				NewPassword: "longer-password",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(repo.updated).To(HaveKey(int64(1)))

			_, err = svc.Authenticate(auth.LoginDTO{Username: "admin", Password: "longer-password"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects a wrong current password", func() {
			err := svc.ChangePassword(1, auth.ChangePasswordDTO{
				OldPassword: "nope",
				NewPassword: "longer-password",
			})

			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
			Expect(repo.updated).To(BeEmpty())
		})
	})
})
