package panel_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"mailprov/pkg/browser"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func expectSubmit(tp *testPanel) {
	tp.drv.EXPECT().SendKeys(gomock.Any(), "[data-mailprov-field='password']", browser.KeyEnter).Return(nil)
	tp.drv.EXPECT().WaitPresent(gomock.Any(), "#btnCreateEmailAccount").Return(nil)
}

func TestSubmit_ButtonReady(t *testing.T) {
	tp := newTestPanel(t, testOptions())
	tp.page.set("#btnCreateEmailAccount", fakeElement{Exists: true, Visible: true, Enabled: true})
	expectSubmit(tp)
	tp.drv.EXPECT().WaitVisible(gomock.Any(), "#btnCreateEmailAccount").Return(nil)
	tp.drv.EXPECT().Click(gomock.Any(), "#btnCreateEmailAccount").Return(nil)

	require.NoError(t, tp.panel.Submit(context.Background()))
	require.Zero(t, tp.page.diagnostics)
	require.Empty(t, tp.page.scriptClicks)
}

func TestSubmit_WaitsForStableButton(t *testing.T) {
	tp := newTestPanel(t, testOptions())
	tp.page.set("#btnCreateEmailAccount", fakeElement{
		Exists:  true,
		Enabled: true,
		Flicker: func(read int) bool { return read > 6 || read%2 == 0 },
	})
	expectSubmit(tp)
	tp.drv.EXPECT().WaitVisible(gomock.Any(), "#btnCreateEmailAccount").Return(nil)
	tp.drv.EXPECT().Click(gomock.Any(), "#btnCreateEmailAccount").Return(nil)

	require.NoError(t, tp.panel.Submit(context.Background()))
	require.Zero(t, tp.page.diagnostics)
	require.Greater(t, tp.page.elements["#btnCreateEmailAccount"].reads, 6)
}

func TestSubmit_ForcesClickWhenNeverReady(t *testing.T) {
	tp := newTestPanel(t, testOptions())
	tp.page.set("#btnCreateEmailAccount", fakeElement{Exists: true, Visible: true, Enabled: false})
	expectSubmit(tp)
	tp.drv.EXPECT().WaitVisible(gomock.Any(), "#btnCreateEmailAccount").Return(nil)
	tp.drv.EXPECT().Click(gomock.Any(), "#btnCreateEmailAccount").Return(errors.New("node is disabled"))

	require.NoError(t, tp.panel.Submit(context.Background()))
	require.Equal(t, 1, tp.page.diagnostics)
	require.Equal(t, []string{"#btnCreateEmailAccount"}, tp.page.scriptClicks)
}

func TestSubmit_ButtonMissing(t *testing.T) {
	tp := newTestPanel(t, testOptions())
	tp.drv.EXPECT().SendKeys(gomock.Any(), gomock.Any(), browser.KeyEnter).Return(nil)
	tp.drv.EXPECT().WaitPresent(gomock.Any(), "#btnCreateEmailAccount").Return(errors.New("no node"))
	tp.drv.EXPECT().WaitVisible(gomock.Any(), "#btnCreateEmailAccount").Return(errors.New("no node"))

	require.Error(t, tp.panel.Submit(context.Background()))
}

// loadingCycle makes the loading panel show once and disappear.
func loadingCycle(tp *testPanel) {
	tp.page.set("#createLoadingPanel", fakeElement{Exists: true, Visible: true, HideAfter: 1})
}

func TestWaitCreateCycle(t *testing.T) {
	tests := []struct {
		name      string
		noLoading bool
		username  fakeElement
		alert     string
		want      bool
		shot      bool
	}{
		{
			name:     "form reset",
			username: fakeElement{Exists: true, Visible: true},
			want:     true,
		},
		{
			name:     "created alert",
			username: fakeElement{Exists: true, Visible: true, Value: "user001"},
			alert:    "The account user001@example.net was Created.",
			want:     true,
		},
		{
			// the loading panel never shows up and only the alert confirms
			name:      "created alert without loading panel",
			noLoading: true,
			username:  fakeElement{Exists: true, Visible: true, Value: "user001"},
			alert:     "The account user001@example.net was created.",
			want:      true,
		},
		{
			name:     "unclear",
			username: fakeElement{Exists: true, Visible: true, Value: "user001"},
			alert:    "Something went wrong",
			shot:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := newTestPanel(t, testOptions())
			if !tt.noLoading {
				loadingCycle(tp)
			}
			tp.page.set("#txtUserName", tt.username)
			tp.page.set("cp-alert-list", fakeElement{Exists: true, Visible: true, Text: tt.alert})

			require.Equal(t, tt.want, tp.panel.WaitCreateCycle(context.Background()))
			if tt.shot {
				require.FileExists(t, filepath.Join(tp.store.Dir(), "after_create_unclear.png"))
			} else {
				require.NoFileExists(t, filepath.Join(tp.store.Dir(), "after_create_unclear.png"))
			}
		})
	}
}

func TestWaitAfterSubmit(t *testing.T) {
	tests := []struct {
		name  string
		hash  string
		table bool
		want  bool
	}{
		{name: "list route", hash: "#/list", want: true},
		{name: "table present", hash: "#/create/", table: true, want: true},
		{name: "neither", hash: "#/create/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := newTestPanel(t, testOptions())
			tp.page.hash = tt.hash
			if tt.table {
				tp.page.set("#accounts_table", fakeElement{Exists: true, Visible: true})
			}

			require.Equal(t, tt.want, tp.panel.WaitAfterSubmit(context.Background()))
			if !tt.want {
				require.FileExists(t, filepath.Join(tp.store.Dir(), "after_submit_unknown.png"))
			}
		})
	}
}
