package panel

// Element selectors of the Jupiter e-mail accounts application.
const (
	userFieldSel      = "#user"
	passFieldSel      = "#pass"
	loginButtonSel    = "#login_submit"
	viewContentSel    = "#viewContent"
	accountsTableSel  = "#accounts_table"
	createButtonSel   = "#btnCreateEmailAccount"
	loadingPanelSel   = "#createLoadingPanel"
	usernameSel       = "#txtUserName"
	domainSelectSel   = "#ddlDomain"
	showOptionalSel   = "#btnShowOptionalSettings"
	optionalPanelSel  = "#optionalSettingsDiv"
	unlimitedQuotaSel = "#unlimitedQuota"
	welcomeEmailSel   = "#send_welcome_email"
	stayOnPageSel     = "#stay"
	domainTextSel     = "#spanAddEmailAccountDomains .domain-text"
	alertListSel      = "cp-alert-list"
	overlaySel        = "#page-overlay"

	// passwordSel is the marker set on the password input once it has been located.
	passwordSel = "[data-mailprov-field='password']"
	// accountNameSel matches the address cell of every row in the accounts table.
	accountNameSel = "tbody#accounts_table_body td.name-column span.account-name"
)

const (
	listRoute   = "frontend/%s/email_accounts/index.html#/list"
	createRoute = "frontend/%s/email_accounts/index.html#/create/"
)

// duplicatePhrases are the messages the panel shows, in English or
// Indonesian, when the mailbox already exists.
var duplicatePhrases = []string{"already exists", "sudah ada", "duplicate"} //nolint: gochecknoglobals
