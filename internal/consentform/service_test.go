package consentform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfectbrow/consent-api/internal/consentform/model"
	"github.com/perfectbrow/consent-api/internal/system/error/serviceerror"
	"github.com/perfectbrow/consent-api/internal/system/stores"
	"github.com/perfectbrow/consent-api/internal/system/stores/mocks"
)

func newTestService(formStore *mocks.MockConsentFormStore) ConsentFormService {
	registry := stores.NewStoreRegistry(nil, formStore, nil, nil, nil)
	return newConsentFormService(registry)
}

func TestGetActiveForm(t *testing.T) {
	ctx := context.Background()

	t.Run("returns active form", func(t *testing.T) {
		formStore := new(mocks.MockConsentFormStore)
		formStore.On("GetActive", ctx).Return(&model.ConsentForm{
			FormID:  "form-1",
			Title:   "Salon Services Consent",
			Version: "2.1",
		}, nil)

		form, err := newTestService(formStore).GetActiveForm(ctx)

		require.Nil(t, err)
		assert.Equal(t, "form-1", form.FormID)
		assert.Equal(t, "2.1", form.Version)
	})

	t.Run("no active form", func(t *testing.T) {
		formStore := new(mocks.MockConsentFormStore)
		formStore.On("GetActive", ctx).Return(nil, nil)

		form, err := newTestService(formStore).GetActiveForm(ctx)

		assert.Nil(t, form)
		assert.Equal(t, serviceerror.ConsentFormNotFoundError.Code, err.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		formStore := new(mocks.MockConsentFormStore)
		formStore.On("GetActive", ctx).Return(nil, assert.AnError)

		form, err := newTestService(formStore).GetActiveForm(ctx)

		assert.Nil(t, form)
		assert.Equal(t, serviceerror.DatabaseError.Code, err.Code)
	})
}

func TestGetForm(t *testing.T) {
	ctx := context.Background()

	t.Run("returns form by id", func(t *testing.T) {
		formStore := new(mocks.MockConsentFormStore)
		formStore.On("GetByID", ctx, "form-2").Return(&model.ConsentForm{FormID: "form-2"}, nil)

		form, err := newTestService(formStore).GetForm(ctx, "form-2")

		require.Nil(t, err)
		assert.Equal(t, "form-2", form.FormID)
	})

	t.Run("unknown form", func(t *testing.T) {
		formStore := new(mocks.MockConsentFormStore)
		formStore.On("GetByID", ctx, "missing").Return(nil, nil)

		form, err := newTestService(formStore).GetForm(ctx, "missing")

		assert.Nil(t, form)
		assert.Equal(t, serviceerror.ConsentFormNotFoundError.Code, err.Code)
	})
}
