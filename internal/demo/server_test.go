package demo

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/web/domain"
	"medtrack/web/internal/apiclient"
)

func testClient(t *testing.T) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(New("test_secret").Router())
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL, nil)
}

func TestPatientLoginAndValidate(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	res, err := c.Login(ctx, DemoPatientEmail, DemoPassword)
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, DemoPatientEmail, res.User.Email)

	validated, err := c.Validate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, validated.ID)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	c := testClient(t)
	_, err := c.Login(context.Background(), DemoPatientEmail, "wrong")
	require.ErrorIs(t, err, apiclient.ErrUnauthorized)
}

func TestValidateRejectsGarbageToken(t *testing.T) {
	c := testClient(t)
	_, err := c.Validate(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, apiclient.ErrUnauthorized)
}

func TestPharmacyLoginAndStaffSurface(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	res, err := c.PharmacyLogin(ctx, DemoPharmacyEmail, DemoPassword)
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.NotZero(t, res.Staff.PharmacyID)

	pharmacy, err := c.MyPharmacy(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Staff.PharmacyID, pharmacy.ID)

	// The generic validation endpoint still accepts a staff credential.
	_, err = c.Validate(ctx, res.Token)
	require.NoError(t, err)
}

func TestPatientTokenCannotReachPharmacySurface(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	res, err := c.Login(ctx, DemoPatientEmail, DemoPassword)
	require.NoError(t, err)

	_, err = c.MyPharmacy(ctx, res.Token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apiclient.ErrUnauthorized, "a valid patient token is forbidden, not unauthenticated")
}

func TestCompleteReminderGrantsPoints(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	res, err := c.Login(ctx, DemoPatientEmail, DemoPassword)
	require.NoError(t, err)

	before, err := c.RewardBalance(ctx, res.Token)
	require.NoError(t, err)

	pending, err := c.PendingReminders(ctx, res.Token)
	require.NoError(t, err)
	require.NotEmpty(t, pending)

	require.NoError(t, c.CompleteReminder(ctx, res.Token, pending[0].ID))

	after, err := c.RewardBalance(ctx, res.Token)
	require.NoError(t, err)
	assert.Greater(t, after.Points, before.Points)

	remaining, err := c.PendingReminders(ctx, res.Token)
	require.NoError(t, err)
	assert.Len(t, remaining, len(pending)-1)
}

func TestCreateBillDecrementsStock(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	res, err := c.PharmacyLogin(ctx, DemoPharmacyEmail, DemoPassword)
	require.NoError(t, err)

	items, err := c.InventoryItems(ctx, res.Token, res.Staff.PharmacyID, "")
	require.NoError(t, err)
	require.NotEmpty(t, items)
	item := items[0]
	require.Greater(t, item.Quantity, int64(2))

	bill, err := c.CreateBill(ctx, res.Token, apiclient.BillRequest{
		CustomerName:  "Rahim Uddin",
		PaymentMethod: domain.PaymentCash,
		PaymentStatus: domain.PaymentPaid,
		Items: []domain.BillLineItem{{
			InventoryID: item.ID,
			Name:        item.Name,
			Quantity:    2,
			UnitPrice:   item.UnitPrice,
			Subtotal:    2 * item.UnitPrice,
		}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 2*item.UnitPrice, bill.TotalAmount, 1e-9)

	after, err := c.InventoryItems(ctx, res.Token, res.Staff.PharmacyID, "")
	require.NoError(t, err)
	for _, got := range after {
		if got.ID == item.ID {
			assert.Equal(t, item.Quantity-2, got.Quantity)
		}
	}

	activity, err := c.PharmacyActivity(ctx, res.Token, res.Staff.PharmacyID)
	require.NoError(t, err)
	require.NotEmpty(t, activity)
}

func TestCreateBillRejectsOversell(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	res, err := c.PharmacyLogin(ctx, DemoPharmacyEmail, DemoPassword)
	require.NoError(t, err)

	items, err := c.InventoryItems(ctx, res.Token, res.Staff.PharmacyID, "")
	require.NoError(t, err)
	require.NotEmpty(t, items)
	item := items[0]

	_, err = c.CreateBill(ctx, res.Token, apiclient.BillRequest{
		CustomerName:  "Rahim Uddin",
		PaymentMethod: domain.PaymentCash,
		PaymentStatus: domain.PaymentPaid,
		Items: []domain.BillLineItem{{
			InventoryID: item.ID,
			Quantity:    item.Quantity + 1,
			UnitPrice:   item.UnitPrice,
		}},
	})
	require.Error(t, err)

	// The failed bill must not touch the stock.
	after, err := c.InventoryItems(ctx, res.Token, res.Staff.PharmacyID, "")
	require.NoError(t, err)
	for _, got := range after {
		if got.ID == item.ID {
			assert.Equal(t, item.Quantity, got.Quantity)
		}
	}
}

func TestDonationStatusFlow(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	res, err := c.Login(ctx, DemoPatientEmail, DemoPassword)
	require.NoError(t, err)

	created, err := c.CreateDonation(ctx, res.Token, domain.Donation{
		MedicineName: "Napa 500mg",
		Quantity:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DonationPending, created.Status)

	require.NoError(t, c.UpdateDonationStatus(ctx, res.Token, created.ID, domain.DonationApproved))

	donations, err := c.Donations(ctx, res.Token)
	require.NoError(t, err)
	var found bool
	for _, d := range donations {
		if d.ID == created.ID {
			found = true
			assert.Equal(t, domain.DonationApproved, d.Status)
		}
	}
	require.True(t, found)
}

func TestSignupIssuesWorkingCredential(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	res, err := c.Signup(ctx, apiclient.SignupRequest{
		Email:     "new@medtrack.test",
		Password:  "longenough",
		FirstName: "Nadia",
		LastName:  "Islam",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	meds, err := c.Medications(ctx, res.Token)
	require.NoError(t, err)
	assert.Empty(t, meds)

	// Duplicate signup is rejected.
	_, err = c.Signup(ctx, apiclient.SignupRequest{Email: "new@medtrack.test", Password: "longenough", FirstName: "Nadia"})
	require.Error(t, err)
}
