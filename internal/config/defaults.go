package config

const (
	defaultLibraryDir         = "~/substance"
	defaultInboxDir           = "_source"
	defaultDatabasePath       = "~/.local/share/assetmirror/catalog.db"
	defaultLogDir             = "~/.local/share/assetmirror/logs"
	defaultLogRetentionDays   = 30
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultRequestsFileName   = "Requests.txt"
	defaultBaseURL            = "https://substance3d.adobe.com/assets/allassets"
	defaultAssetTypeReference = "/assets/allassets?assetType=substanceMaterial"
	defaultCategoryReference  = "/assets/allassets?assetType=substanceMaterial&category"
	defaultEntryReference     = "source-asset-thumbnail"
	defaultDetailsMarker      = "sixteen-by-nine"
	defaultViewClass          = "view"
	defaultUserAgent          = "assetmirror/dev"
	defaultPageSettleMillis   = 1000
	defaultDetailSettleMillis = 10000
	defaultScrollStep         = 200
	defaultScrollPauseMillis  = 200
	defaultRequestTimeout     = 30
	defaultFetchTimeout       = 120
	defaultImageExtension     = ".jpg"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir:   defaultLibraryDir,
			InboxDir:     defaultInboxDir,
			DatabasePath: defaultDatabasePath,
			LogDir:       defaultLogDir,
		},
		Site: Site{
			BaseURL:            defaultBaseURL,
			AssetTypeReference: defaultAssetTypeReference,
			CategoryReference:  defaultCategoryReference,
			EntryReference:     defaultEntryReference,
			DetailsMarker:      defaultDetailsMarker,
			ViewClass:          defaultViewClass,
			UserAgent:          defaultUserAgent,
			PageSettleMillis:   defaultPageSettleMillis,
			DetailSettleMillis: defaultDetailSettleMillis,
			ScrollStep:         defaultScrollStep,
			ScrollPauseMillis:  defaultScrollPauseMillis,
			RequestTimeout:     defaultRequestTimeout,
		},
		Fetch: Fetch{
			TimeoutSeconds: defaultFetchTimeout,
			UserAgent:      defaultUserAgent,
		},
		Inbox: Inbox{
			ImageExtensions: []string{defaultImageExtension},
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
