package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/emre/tutorhub/internal/app/auth"
	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  map[int64]*models.User
	byName map[string]int64
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, byName: map[string]int64{}}
}

func (r *fakeUserRepo) CreateWithProfile(_ context.Context, user *models.User) error {
	if _, taken := r.byName[user.Username]; taken {
		return apperrors.ErrUsernameAlreadyExists
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	r.byName[user.Username] = user.ID
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	id, ok := r.byName[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return r.users[id], nil
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	_, ok := r.byName[username]
	return ok, nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	if offset >= len(users) {
		return nil, nil
	}
	users = users[offset:]
	if limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.byName, user.Username)
	delete(r.users, id)
	return nil
}

type fakeProfileRepo struct {
	byUser map[int64]*models.Profile
	nextID int64
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUser: map[int64]*models.Profile{}}
}

func (r *fakeProfileRepo) add(userID int64, role models.Role) *models.Profile {
	r.nextID++
	profile := &models.Profile{ID: r.nextID, UserID: userID, Role: role}
	r.byUser[userID] = profile
	return profile
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID int64) (*models.Profile, error) {
	profile, ok := r.byUser[userID]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) UpdateRole(_ context.Context, profileID int64, role models.Role) error {
	for _, p := range r.byUser {
		if p.ID == profileID {
			p.Role = role
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

type fakeTutorRepo struct {
	tutors    map[int64]*models.Tutor
	byProfile map[int64]int64
	nextID    int64
}

func newFakeTutorRepo() *fakeTutorRepo {
	return &fakeTutorRepo{tutors: map[int64]*models.Tutor{}, byProfile: map[int64]int64{}}
}

func (r *fakeTutorRepo) Create(_ context.Context, tutor *models.Tutor) error {
	if _, taken := r.byProfile[tutor.ProfileID]; taken {
		return apperrors.ErrConflict
	}
	r.nextID++
	tutor.ID = r.nextID
	r.tutors[tutor.ID] = tutor
	r.byProfile[tutor.ProfileID] = tutor.ID
	return nil
}

func (r *fakeTutorRepo) GetByID(_ context.Context, id int64) (*models.Tutor, error) {
	tutor, ok := r.tutors[id]
	if !ok {
		return nil, apperrors.ErrTutorNotFound
	}
	return tutor, nil
}

func (r *fakeTutorRepo) GetByProfileID(_ context.Context, profileID int64) (*models.Tutor, error) {
	id, ok := r.byProfile[profileID]
	if !ok {
		return nil, apperrors.ErrTutorNotFound
	}
	return r.tutors[id], nil
}

func (r *fakeTutorRepo) Update(_ context.Context, tutor *models.Tutor) error {
	if _, ok := r.tutors[tutor.ID]; !ok {
		return apperrors.ErrTutorNotFound
	}
	r.tutors[tutor.ID] = tutor
	return nil
}

func (r *fakeTutorRepo) List(_ context.Context, subject, maxRate string, limit, offset int) ([]*models.Tutor, error) {
	var tutors []*models.Tutor
	for _, t := range r.tutors {
		tutors = append(tutors, t)
	}
	sort.Slice(tutors, func(i, j int) bool { return tutors[i].Username < tutors[j].Username })
	return tutors, nil
}

type fakeStudentRepo struct {
	students  map[int64]*models.Student
	byProfile map[int64]int64
	nextID    int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[int64]*models.Student{}, byProfile: map[int64]int64{}}
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	if _, taken := r.byProfile[student.ProfileID]; taken {
		return apperrors.ErrConflict
	}
	r.nextID++
	student.ID = r.nextID
	r.students[student.ID] = student
	r.byProfile[student.ProfileID] = student.ID
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (r *fakeStudentRepo) GetByProfileID(_ context.Context, profileID int64) (*models.Student, error) {
	id, ok := r.byProfile[profileID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return r.students[id], nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	r.students[student.ID] = student
	return nil
}

type fakeRelationshipRepo struct {
	rows   map[string]*models.Relationship
	nextID int64

	// account lookups for the active-pairing check
	tutorAccountOf   map[int64]int64 // tutorID -> userID
	studentAccountOf map[int64]int64 // studentID -> userID
}

func newFakeRelationshipRepo() *fakeRelationshipRepo {
	return &fakeRelationshipRepo{
		rows:             map[string]*models.Relationship{},
		tutorAccountOf:   map[int64]int64{},
		studentAccountOf: map[int64]int64{},
	}
}

func pairKey(studentID, tutorID int64) string {
	return fmt.Sprintf("%d:%d", studentID, tutorID)
}

func (r *fakeRelationshipRepo) GetOrCreate(_ context.Context, studentID, tutorID int64) (*models.Relationship, bool, error) {
	if rel, ok := r.rows[pairKey(studentID, tutorID)]; ok {
		return rel, false, nil
	}
	r.nextID++
	rel := &models.Relationship{
		ID:        r.nextID,
		StudentID: studentID,
		TutorID:   tutorID,
		CreatedAt: time.Now(),
	}
	r.rows[pairKey(studentID, tutorID)] = rel
	return rel, true, nil
}

func (r *fakeRelationshipRepo) Activate(_ context.Context, studentID, tutorID int64) (*models.Relationship, error) {
	rel, ok := r.rows[pairKey(studentID, tutorID)]
	if !ok {
		r.nextID++
		rel = &models.Relationship{
			ID:        r.nextID,
			StudentID: studentID,
			TutorID:   tutorID,
			CreatedAt: time.Now(),
		}
		r.rows[pairKey(studentID, tutorID)] = rel
	}
	rel.IsActive = true
	return rel, nil
}

func (r *fakeRelationshipRepo) GetByPair(_ context.Context, studentID, tutorID int64) (*models.Relationship, error) {
	rel, ok := r.rows[pairKey(studentID, tutorID)]
	if !ok {
		return nil, apperrors.ErrRelationshipNotFound
	}
	return rel, nil
}

func (r *fakeRelationshipRepo) DeleteByPair(_ context.Context, studentID, tutorID int64) error {
	key := pairKey(studentID, tutorID)
	if _, ok := r.rows[key]; !ok {
		return apperrors.ErrRelationshipNotFound
	}
	delete(r.rows, key)
	return nil
}

func (r *fakeRelationshipRepo) ListByTutor(_ context.Context, tutorID int64) ([]*models.Relationship, error) {
	var out []*models.Relationship
	for _, rel := range r.rows {
		if rel.TutorID == tutorID {
			out = append(out, rel)
		}
	}
	sortRelationships(out)
	return out, nil
}

func (r *fakeRelationshipRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.Relationship, error) {
	var out []*models.Relationship
	for _, rel := range r.rows {
		if rel.StudentID == studentID {
			out = append(out, rel)
		}
	}
	sortRelationships(out)
	return out, nil
}

// sortRelationships matches the storage ordering: active first, then by
// tutor username.
func sortRelationships(rels []*models.Relationship) {
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].IsActive != rels[j].IsActive {
			return rels[i].IsActive
		}
		return rels[i].TutorUsername < rels[j].TutorUsername
	})
}

func (r *fakeRelationshipRepo) ActiveBetweenAccounts(_ context.Context, tutorUserID, studentUserID int64) (bool, error) {
	for _, rel := range r.rows {
		if !rel.IsActive {
			continue
		}
		if r.tutorAccountOf[rel.TutorID] == tutorUserID && r.studentAccountOf[rel.StudentID] == studentUserID {
			return true, nil
		}
	}
	return false, nil
}

type fakeMessageRepo struct {
	messages []*models.Message
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *models.Message) error {
	r.nextID++
	message.ID = r.nextID
	message.CreatedAt = time.Now()
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) ListThread(_ context.Context, userID, otherUserID int64) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range r.messages {
		if (m.SenderID == userID && m.RecipientID == otherUserID) ||
			(m.SenderID == otherUserID && m.RecipientID == userID) {
			out = append(out, m)
		}
	}
	// Matches the storage ordering: created_at first, id as tiebreaker
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type fakeTokenRepo struct {
	tokens map[string]*models.RefreshToken
	nextID int64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*models.RefreshToken{}}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.nextID++
	token.ID = r.nextID
	token.CreatedAt = time.Now()
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeTokenRepo) GetByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := r.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return rt, nil
}

func (r *fakeTokenRepo) Revoke(_ context.Context, token string) error {
	rt, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	rt.Revoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID int64) error {
	for _, rt := range r.tokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for key, rt := range r.tokens {
		if rt.ExpiresAt.Before(time.Now()) {
			delete(r.tokens, key)
			n++
		}
	}
	return n, nil
}

// testEnv assembles the fakes into a coherent world where accounts,
// profiles and role entries reference each other consistently.
type testEnv struct {
	users         *fakeUserRepo
	profiles      *fakeProfileRepo
	tutors        *fakeTutorRepo
	students      *fakeStudentRepo
	relationships *fakeRelationshipRepo
	messages      *fakeMessageRepo
	tokens        *fakeTokenRepo
	authz         *auth.AuthorizationService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:         newFakeUserRepo(),
		profiles:      newFakeProfileRepo(),
		tutors:        newFakeTutorRepo(),
		students:      newFakeStudentRepo(),
		relationships: newFakeRelationshipRepo(),
		messages:      newFakeMessageRepo(),
		tokens:        newFakeTokenRepo(),
	}
	env.authz = auth.NewAuthorizationService(env.profiles, env.tutors, env.students)
	return env
}

func (e *testEnv) addUser(username string, staff bool) *models.User {
	user := &models.User{Username: username, Password: "x", IsStaff: staff}
	if err := e.users.CreateWithProfile(context.Background(), user); err != nil {
		panic(err)
	}
	e.profiles.add(user.ID, models.RoleUnset)
	return user
}

func (e *testEnv) addTutor(username string) (*models.User, *models.Tutor) {
	user := e.addUser(username, false)
	profile := e.profiles.byUser[user.ID]
	profile.Role = models.RoleTutor
	tutor := &models.Tutor{ProfileID: profile.ID, Subject: "Math", HourlyRate: "30.00", Username: username}
	if err := e.tutors.Create(context.Background(), tutor); err != nil {
		panic(err)
	}
	e.relationships.tutorAccountOf[tutor.ID] = user.ID
	return user, tutor
}

func (e *testEnv) addStudent(username string) (*models.User, *models.Student) {
	user := e.addUser(username, false)
	profile := e.profiles.byUser[user.ID]
	profile.Role = models.RoleStudent
	student := &models.Student{ProfileID: profile.ID, Goals: "learn", Username: username}
	if err := e.students.Create(context.Background(), student); err != nil {
		panic(err)
	}
	e.relationships.studentAccountOf[student.ID] = user.ID
	return user, student
}
