package panel_test

import (
	"context"
	"errors"
	"testing"

	"mailprov/pkg/browser"
	"mailprov/pkg/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupCreateForm(tp *testPanel) {
	tp.page.passwordFound = true
	tp.page.set("#txtUserName", fakeElement{Exists: true, Visible: true, Enabled: true})
	tp.page.set("#optionalSettingsDiv", fakeElement{Exists: true, Visible: true})
	tp.page.set("#unlimitedQuota", fakeElement{Exists: true, Visible: true, Enabled: true})
	tp.page.set("#send_welcome_email", fakeElement{Exists: true, Visible: true, Enabled: true, Checked: true})
	tp.page.set("#stay", fakeElement{Exists: true, Visible: true, Enabled: true, Checked: true})
	tp.page.set("#spanAddEmailAccountDomains .domain-text", fakeElement{Exists: true, Visible: true, Text: " @example.net "})

	tp.drv.EXPECT().WaitVisible(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	tp.drv.EXPECT().Click(gomock.Any(), gomock.Any()).DoAndReturn(tp.page.click).AnyTimes()
	tp.drv.EXPECT().SendKeys(gomock.Any(), gomock.Any(), browser.KeyTab).Return(nil).AnyTimes()
}

func TestFillCreateForm_DefaultDomain(t *testing.T) {
	tp := newTestPanel(t, testOptions())
	setupCreateForm(tp)

	got, err := tp.panel.FillCreateForm(context.Background(), domain.AccountRequest{
		LocalPart: "user001",
		Password:  "pw-123456789",
	})
	require.NoError(t, err)
	require.Equal(t, "example.net", got)

	require.Equal(t, "user001", tp.page.value("#txtUserName"))
	require.Equal(t, "pw-123456789", tp.page.value("[data-mailprov-field='password']"))
	require.Zero(t, tp.page.domainSelections)

	require.True(t, tp.page.elements["#unlimitedQuota"].Checked)
	require.False(t, tp.page.elements["#send_welcome_email"].Checked)
	require.True(t, tp.page.elements["#stay"].Checked)
}

func TestFillCreateForm_SingleDomainSkipsDropdown(t *testing.T) {
	tp := newTestPanel(t, testOptions())
	setupCreateForm(tp)

	got, err := tp.panel.FillCreateForm(context.Background(), domain.AccountRequest{
		LocalPart: "user002",
		Password:  "pw-123456789",
		Domain:    "example.org",
	})
	require.NoError(t, err)
	require.Equal(t, "example.net", got)
	require.Zero(t, tp.page.domainSelections)
}

func TestFillCreateForm_SelectsDomain(t *testing.T) {
	tp := newTestPanel(t, testOptions())
	setupCreateForm(tp)
	tp.page.domains = 3

	got, err := tp.panel.FillCreateForm(context.Background(), domain.AccountRequest{
		LocalPart: "user003",
		Password:  "pw-123456789",
		Domain:    "example.org",
	})
	require.NoError(t, err)
	require.Equal(t, "example.org", got)
	require.Equal(t, 1, tp.page.domainSelections)
	require.Equal(t, "example.org", tp.page.selectedDomain)
}

func TestFillCreateForm_ExpandsOptionalSettings(t *testing.T) {
	opts := testOptions()
	opts.Form.UnlimitedQuota = false
	tp := newTestPanel(t, opts)
	setupCreateForm(tp)
	tp.page.set("#optionalSettingsDiv", fakeElement{})
	tp.page.set("#btnShowOptionalSettings", fakeElement{Exists: true, Visible: true, Enabled: true})

	_, err := tp.panel.FillCreateForm(context.Background(), domain.AccountRequest{
		LocalPart: "user004",
		Password:  "pw-123456789",
	})
	require.NoError(t, err)
	require.True(t, tp.page.elements["#btnShowOptionalSettings"].Checked, "expand button was not clicked")
	require.False(t, tp.page.elements["#unlimitedQuota"].Checked)
}

func TestFillCreateForm_HiddenOptionIgnored(t *testing.T) {
	tp := newTestPanel(t, testOptions())
	setupCreateForm(tp)
	tp.page.set("#unlimitedQuota", fakeElement{Exists: true, Visible: false, Enabled: true})

	_, err := tp.panel.FillCreateForm(context.Background(), domain.AccountRequest{
		LocalPart: "user005",
		Password:  "pw-123456789",
	})
	require.NoError(t, err)
	require.False(t, tp.page.elements["#unlimitedQuota"].Checked)
}

func TestFillCreateForm_MissingUsername(t *testing.T) {
	tp := newTestPanel(t, testOptions())
	tp.drv.EXPECT().WaitVisible(gomock.Any(), "#txtUserName").Return(errors.New("no node"))

	_, err := tp.panel.FillCreateForm(context.Background(), domain.AccountRequest{
		LocalPart: "user006",
		Password:  "pw-123456789",
	})
	require.Error(t, err)
	require.Empty(t, tp.page.value("[data-mailprov-field='password']"))
}

func TestFillCreateForm_PasswordFieldMissing(t *testing.T) {
	tp := newTestPanel(t, testOptions())
	setupCreateForm(tp)
	tp.page.passwordFound = false

	_, err := tp.panel.FillCreateForm(context.Background(), domain.AccountRequest{
		LocalPart: "user007",
		Password:  "pw-123456789",
	})
	require.Error(t, err)
}
