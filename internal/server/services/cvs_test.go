package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileStore struct {
	err     error
	uploads []string
}

func (f *fakeFileStore) PresignUpload(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, key)
	return "https://files.example.com/put/" + key, nil
}

func (f *fakeFileStore) PresignDownload(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://files.example.com/get/" + key, nil
}

func defaultIDs(t *testing.T, f *fixture, userID string) []string {
	t.Helper()
	list, err := f.store.CVs(nil).ListByUser(f.ctx, userID)
	require.NoError(t, err)
	var ids []string
	for _, cv := range list {
		if cv.IsDefault {
			ids = append(ids, cv.ID)
		}
	}
	return ids
}

func TestSaveCV_DefaultPolicy(t *testing.T) {
	f := newFixture(t)
	seeker := f.seeker("s@example.com")
	svc := f.cvService(&fakeFileStore{})

	first, err := svc.SaveCV(f.ctx, seeker, CVInput{Title: "First"})
	require.NoError(t, err)
	assert.True(t, first.IsDefault, "first CV is always default")

	second, err := svc.SaveCV(f.ctx, seeker, CVInput{Title: "Second"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
	assert.Equal(t, []string{first.ID}, defaultIDs(t, f, seeker.UserID()))

	third, err := svc.SaveCV(f.ctx, seeker, CVInput{Title: "Third", IsDefault: true})
	require.NoError(t, err)
	assert.True(t, third.IsDefault)
	assert.Equal(t, []string{third.ID}, defaultIDs(t, f, seeker.UserID()))
}

func TestSaveCV_Guards(t *testing.T) {
	f := newFixture(t)
	svc := f.cvService(&fakeFileStore{})
	emp, _ := f.employer("emp@example.com", true)

	_, err := svc.SaveCV(f.ctx, emp, CVInput{Title: "CV"})
	require.ErrorIs(t, err, common.ErrorAccessDenied)

	_, err = svc.SaveCV(f.ctx, f.seeker("s@example.com"), CVInput{Title: " "})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestUpdateCV(t *testing.T) {
	f := newFixture(t)
	seeker := f.seeker("s@example.com")
	svc := f.cvService(&fakeFileStore{})

	first, err := svc.SaveCV(f.ctx, seeker, CVInput{Title: "First", Skills: "go"})
	require.NoError(t, err)
	second, err := svc.SaveCV(f.ctx, seeker, CVInput{Title: "Second"})
	require.NoError(t, err)

	_, err = svc.UpdateCV(f.ctx, f.seeker("other@example.com"), first.ID, CVInput{Title: "Mine"})
	require.ErrorIs(t, err, common.ErrorAccessDenied)

	updated, err := svc.UpdateCV(f.ctx, seeker, second.ID, CVInput{Summary: "ten years", IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, "Second", updated.Title, "blank title keeps the old one")
	assert.Equal(t, "ten years", updated.Summary)
	assert.True(t, updated.IsDefault)
	assert.Equal(t, []string{second.ID}, defaultIDs(t, f, seeker.UserID()))

	// clearing the flag is ignored
	updated, err = svc.UpdateCV(f.ctx, seeker, second.ID, CVInput{IsDefault: false})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	_, err = svc.UpdateCV(f.ctx, seeker, "missing", CVInput{})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteCV_PromotesLatest(t *testing.T) {
	f := newFixture(t)
	seeker := f.seeker("s@example.com")
	svc := f.cvService(&fakeFileStore{})

	first, err := svc.SaveCV(f.ctx, seeker, CVInput{Title: "First"})
	require.NoError(t, err)
	_, err = svc.SaveCV(f.ctx, seeker, CVInput{Title: "Second"})
	require.NoError(t, err)
	third, err := svc.SaveCV(f.ctx, seeker, CVInput{Title: "Third"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteCV(f.ctx, f.seeker("other@example.com"), first.ID), common.ErrorAccessDenied)

	require.NoError(t, svc.DeleteCV(f.ctx, seeker, first.ID))
	assert.Equal(t, []string{third.ID}, defaultIDs(t, f, seeker.UserID()))

	list, err := svc.ListCVs(f.ctx, seeker)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeleteCV_LastOne(t *testing.T) {
	f := newFixture(t)
	seeker := f.seeker("s@example.com")
	svc := f.cvService(&fakeFileStore{})

	cv, err := svc.SaveCV(f.ctx, seeker, CVInput{Title: "Only"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCV(f.ctx, seeker, cv.ID))
	assert.Empty(t, defaultIDs(t, f, seeker.UserID()))
}

func TestRequestUpload(t *testing.T) {
	f := newFixture(t)
	seeker := f.seeker("s@example.com")
	files := &fakeFileStore{}
	svc := f.cvService(files)

	cv, url, err := svc.RequestUpload(f.ctx, seeker, CVInput{FileName: "resume.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", cv.Title, "title defaults to the file name")
	assert.True(t, strings.HasPrefix(cv.StorageKey, "cvs/2025/3/10/"+seeker.UserID()+"/"), cv.StorageKey)
	assert.Equal(t, "https://files.example.com/put/"+cv.StorageKey, url)
	assert.Equal(t, []string{cv.StorageKey}, files.uploads)

	_, _, err = svc.RequestUpload(f.ctx, seeker, CVInput{})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestRequestUpload_PresignFailure(t *testing.T) {
	f := newFixture(t)
	seeker := f.seeker("s@example.com")
	boom := errors.New("s3 unavailable")
	svc := f.cvService(&fakeFileStore{err: boom})

	_, _, err := svc.RequestUpload(f.ctx, seeker, CVInput{FileName: "resume.pdf"})
	require.ErrorIs(t, err, boom)

	n, err := f.store.CVs(nil).CountByUser(f.ctx, seeker.UserID())
	require.NoError(t, err)
	assert.Zero(t, n, "no CV is stored when presigning fails")
}

func TestDownloadURL(t *testing.T) {
	f := newFixture(t)
	seeker := f.seeker("s@example.com")
	emp, company := f.employer("emp@example.com", true)
	other, _ := f.employer("other@example.com", true)
	svc := f.cvService(&fakeFileStore{})

	cv, _, err := svc.RequestUpload(f.ctx, seeker, CVInput{FileName: "resume.pdf"})
	require.NoError(t, err)
	want := "https://files.example.com/get/" + cv.StorageKey

	url, err := svc.DownloadURL(f.ctx, seeker, cv.ID)
	require.NoError(t, err)
	assert.Equal(t, want, url)

	_, err = svc.DownloadURL(f.ctx, emp, cv.ID)
	require.ErrorIs(t, err, common.ErrorAccessDenied, "not shared before an application")

	job := f.job(company.ID, "Go Developer", models.JobOpen)
	_, err = f.applicationService().Apply(f.ctx, seeker, ApplyInput{JobID: job.ID})
	require.NoError(t, err)

	url, err = svc.DownloadURL(f.ctx, emp, cv.ID)
	require.NoError(t, err)
	assert.Equal(t, want, url)

	_, err = svc.DownloadURL(f.ctx, other, cv.ID)
	require.ErrorIs(t, err, common.ErrorAccessDenied)

	_, err = svc.DownloadURL(f.ctx, f.admin(), cv.ID)
	require.NoError(t, err)

	metaOnly, err := svc.SaveCV(f.ctx, seeker, CVInput{Title: "No file"})
	require.NoError(t, err)
	_, err = svc.DownloadURL(f.ctx, seeker, metaOnly.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}
