package i18n

// Message keys.
const (
	NoPermission           = "NoPermission"
	ChatCommandsDisabled   = "ChatCommandsDisabled"
	HelpHeader             = "HelpHeader"
	HelpStatus             = "HelpStatus"
	HelpInfo               = "HelpInfo"
	HelpItems              = "HelpItems"
	HelpReload             = "HelpReload"
	HelpToggle             = "HelpToggle"
	StatusProtected        = "StatusProtected"
	StatusNotProtected     = "StatusNotProtected"
	StatusNeedPermission   = "StatusNeedPermission"
	StatusProtectedItems   = "StatusProtectedItems"
	StatusPermissionMode   = "StatusPermissionMode"
	InfoHeader             = "InfoHeader"
	InfoVersion            = "InfoVersion"
	InfoProtectedItems     = "InfoProtectedItems"
	InfoPermissionRequired = "InfoPermissionRequired"
	InfoPermissionMode     = "InfoPermissionMode"
	ItemsHeader            = "ItemsHeader"
	ConfigReloaded         = "ConfigReloaded"
	ToggleUseConsole       = "ToggleUseConsole"
	ConflictWarning        = "ConflictWarning"
	ConflictRecommendation = "ConflictRecommendation"
)

// English returns the default messages.
func English() map[string]string {
	return map[string]string{
		NoPermission:           "You don't have permission to use this command.",
		ChatCommandsDisabled:   "Chat commands are disabled.",
		HelpHeader:             "<color=#FFA500>[BurnedBegone]</color> Available commands:",
		HelpStatus:             "<color=#87CEEB>/bb status</color> - Show your protection status",
		HelpInfo:               "<color=#87CEEB>/bb info</color> - Show plugin information",
		HelpItems:              "<color=#87CEEB>/bb items</color> - List protected items",
		HelpReload:             "<color=#FF6347>/bb reload</color> - Reload plugin configuration",
		HelpToggle:             "<color=#FF6347>/bb toggle</color> - Toggle plugin on/off",
		StatusProtected:        "<color=#FFA500>[BurnedBegone]</color> Your meat burning protection: <color=#90EE90>PROTECTED</color>",
		StatusNotProtected:     "<color=#FFA500>[BurnedBegone]</color> Your meat burning protection: <color=#FF6347>NOT PROTECTED</color>",
		StatusNeedPermission:   "You need permission: <color=#87CEEB>{0}</color>",
		StatusProtectedItems:   "Protected items: <color=#87CEEB>{0}</color>",
		StatusPermissionMode:   "Permission mode: <color=#87CEEB>{0}</color>",
		InfoHeader:             "<color=#FFA500>[BurnedBegone]</color> Plugin Information:",
		InfoVersion:            "Version: <color=#87CEEB>{0}</color>",
		InfoProtectedItems:     "Protected items: <color=#87CEEB>{0}</color>",
		InfoPermissionRequired: "Permission required: <color=#87CEEB>{0}</color>",
		InfoPermissionMode:     "Permission mode: <color=#87CEEB>{0}</color>",
		ItemsHeader:            "<color=#FFA500>[BurnedBegone]</color> Protected items ({0}):",
		ConfigReloaded:         "<color=#FFA500>[BurnedBegone]</color> Configuration reloaded!",
		ToggleUseConsole:       "<color=#FFA500>[BurnedBegone]</color> Use server console: oxide.reload BurnedBegone",
		ConflictWarning:        "COMPATIBILITY WARNING: Detected conflicting plugin '{0}' v{1}",
		ConflictRecommendation: "Recommendation: oxide.unload {0} - to prevent compatibility issues",
	}
}

// German returns the German translations.
func German() map[string]string {
	return map[string]string{
		NoPermission:           "Sorry, du darfst diesen Befehl nicht verwenden.",
		ChatCommandsDisabled:   "Chat-Befehle sind derzeit ausgeschaltet.",
		HelpHeader:             "<color=#FFA500>[BurnedBegone]</color> Verfügbare Befehle:",
		HelpStatus:             "<color=#87CEEB>/bb status</color> - Zeigt deinen Schutzstatus",
		HelpInfo:               "<color=#87CEEB>/bb info</color> - Plugin-Infos anzeigen",
		HelpReload:             "<color=#FF6347>/bb reload</color> - Einstellungen neu laden",
		HelpToggle:             "<color=#FF6347>/bb toggle</color> - Plugin an/aus",
		StatusProtected:        "<color=#FFA500>[BurnedBegone]</color> Dein Fleisch: <color=#90EE90>VERBRENNT NICHT</color>",
		StatusNotProtected:     "<color=#FFA500>[BurnedBegone]</color> Dein Fleisch: <color=#FF6347>KANN VERBRENNEN</color>",
		StatusNeedPermission:   "Du brauchst diese Berechtigung: <color=#87CEEB>{0}</color>",
		StatusProtectedItems:   "Geschützte Items: <color=#87CEEB>{0}</color>",
		StatusPermissionMode:   "Rechtevergabe: <color=#87CEEB>{0}</color>",
		InfoHeader:             "<color=#FFA500>[BurnedBegone]</color> Plugin-Infos:",
		InfoVersion:            "Version: <color=#87CEEB>{0}</color>",
		InfoProtectedItems:     "Geschützte Items: <color=#87CEEB>{0}</color>",
		InfoPermissionRequired: "Rechte nötig: <color=#87CEEB>{0}</color>",
		InfoPermissionMode:     "Rechtevergabe: <color=#87CEEB>{0}</color>",
		ConfigReloaded:         "<color=#FFA500>[BurnedBegone]</color> Einstellungen wurden neu geladen!",
		ToggleUseConsole:       "<color=#FFA500>[BurnedBegone]</color> Nutze Server-Konsole: oxide.reload BurnedBegone",
	}
}

// French returns the French translations.
func French() map[string]string {
	return map[string]string{
		NoPermission:           "Désolé, tu n'as pas le droit d'utiliser cette commande.",
		ChatCommandsDisabled:   "Les commandes de chat sont désactivées.",
		HelpHeader:             "<color=#FFA500>[BurnedBegone]</color> Commandes disponibles:",
		HelpStatus:             "<color=#87CEEB>/bb status</color> - Affiche ton statut de protection",
		HelpInfo:               "<color=#87CEEB>/bb info</color> - Infos sur le plugin",
		HelpReload:             "<color=#FF6347>/bb reload</color> - Recharger la config",
		HelpToggle:             "<color=#FF6347>/bb toggle</color> - Activer/désactiver le plugin",
		StatusProtected:        "<color=#FFA500>[BurnedBegone]</color> Ta viande: <color=#90EE90>NE BRÛLE PAS</color>",
		StatusNotProtected:     "<color=#FFA500>[BurnedBegone]</color> Ta viande: <color=#FF6347>PEUT BRÛLER</color>",
		StatusNeedPermission:   "Tu as besoin de cette permission: <color=#87CEEB>{0}</color>",
		StatusProtectedItems:   "Objets protégés: <color=#87CEEB>{0}</color>",
		StatusPermissionMode:   "Mode permission: <color=#87CEEB>{0}</color>",
		InfoHeader:             "<color=#FFA500>[BurnedBegone]</color> Infos du plugin:",
		InfoVersion:            "Version: <color=#87CEEB>{0}</color>",
		InfoProtectedItems:     "Objets protégés: <color=#87CEEB>{0}</color>",
		InfoPermissionRequired: "Permission requise: <color=#87CEEB>{0}</color>",
		InfoPermissionMode:     "Mode permission: <color=#87CEEB>{0}</color>",
		ConfigReloaded:         "<color=#FFA500>[BurnedBegone]</color> Configuration rechargée!",
		ToggleUseConsole:       "<color=#FFA500>[BurnedBegone]</color> Utilise la console: oxide.reload BurnedBegone",
	}
}

// Translations returns the bundled non-English message sets keyed by language.
func Translations() map[string]map[string]string {
	return map[string]map[string]string{
		"de": German(),
		"fr": French(),
	}
}
