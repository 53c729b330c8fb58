package settings

// Wire names of the actions.
const (
	TypeStoragePut                  = "storage-put"
	TypeLanguagePut                 = "language-put"
	TypeNavigationAllowedURLsPut    = "navigationAllowedURLs-put"
	TypeNavigationAllowedURLsDelete = "navigationAllowedURLs-delete"
	TypeMessagesPut                 = "messages-put"
	TypeAppPut                      = "app-put"
)

// Action is a request to change settings. The set of actions is closed:
// only the types in this package implement it.
type Action interface {
	Type() string
	action()
}

// PutStorage replaces the storage location.
type PutStorage struct {
	Storage Storage
}

// PutLanguage replaces the display language.
type PutLanguage struct {
	Language string
}

// PutNavigationAllowedURLs adds URLs to the allow list.
type PutNavigationAllowedURLs struct {
	URLs []string
}

// DeleteNavigationAllowedURLs removes one occurrence of each URL from the
// allow list.
type DeleteNavigationAllowedURLs struct {
	URLs []string
}

// PutMessages replaces the resolved UI messages.
type PutMessages struct {
	Messages map[string]string
}

// PutApp replaces the application metadata.
type PutApp struct {
	App AppInfo
}

// UnknownAction carries a wire type this version does not understand.
// Reducing it leaves the state unchanged.
type UnknownAction struct {
	Name string
}

func (PutStorage) Type() string                  { return TypeStoragePut }
func (PutLanguage) Type() string                 { return TypeLanguagePut }
func (PutNavigationAllowedURLs) Type() string    { return TypeNavigationAllowedURLsPut }
func (DeleteNavigationAllowedURLs) Type() string { return TypeNavigationAllowedURLsDelete }
func (PutMessages) Type() string                 { return TypeMessagesPut }
func (PutApp) Type() string                      { return TypeAppPut }
func (action UnknownAction) Type() string        { return action.Name }

func (PutStorage) action()                  {}
func (PutLanguage) action()                 {}
func (PutNavigationAllowedURLs) action()    {}
func (DeleteNavigationAllowedURLs) action() {}
func (PutMessages) action()                 {}
func (PutApp) action()                      {}
func (UnknownAction) action()               {}
