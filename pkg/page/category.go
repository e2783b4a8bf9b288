package page

// Category identifies one settings page.
type Category string

const (
	Audio             Category = "audio"
	Display           Category = "display"
	WiFi              Category = "wifi"
	Bluetooth         Category = "bluetooth"
	Security          Category = "security"
	Autostart         Category = "autostart"
	Connectivity      Category = "connectivity"
	ConfigFiles       Category = "config"
	UserPermissions   Category = "user_permissions"
	DefaultApps       Category = "default_apps"
	KeyboardShortcuts Category = "keyboard_shortcuts"
	Appearance        Category = "appearance"
	Power             Category = "power"
	About             Category = "about"
)

// Description names the UI description file and the id of the page
// container inside it.
type Description struct {
	File   string
	Object string
}

// Descriptions lists the pages whose layout comes from a UI description
// file.
var Descriptions = map[Category]Description{
	WiFi:              {File: "wifi.ui", Object: "wifi_page"},
	Bluetooth:         {File: "bluetooth.ui", Object: "bluetooth_page"},
	Audio:             {File: "audio.ui", Object: "audio_page"},
	Display:           {File: "display.ui", Object: "display_page"},
	Security:          {File: "security_settings.ui", Object: "security_settings_page"},
	Autostart:         {File: "autostart_apps.ui", Object: "autostart_apps_page"},
	Connectivity:      {File: "connectivity.ui", Object: "connectivity_page"},
	ConfigFiles:       {File: "config_files.ui", Object: "config_files_page"},
	UserPermissions:   {File: "user_permissions.ui", Object: "user_permissions_page"},
	DefaultApps:       {File: "default_apps.ui", Object: "default_apps_page"},
	KeyboardShortcuts: {File: "keyboard_shortcuts.ui", Object: "keyboard_shortcuts_page"},
}
