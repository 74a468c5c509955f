package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Llaves del catálogo. Los números llegan ya formateados (%s) para conservar el apóstrofo suizo.
const (
	KeyPalletsInvalid          = "uom.qty_pallets.invalid"
	KeyPackagesInvalid         = "uom.qty_packages.invalid"
	KeySinglesInvalid          = "uom.qty_singles.invalid"
	KeyQtyBaseInvalid          = "uom.qty_base.invalid"
	KeyQuantityRequired        = "uom.qty_base.required"
	KeyPalletFactorInvalid     = "uom.item.pallet_factor_invalid"
	KeyPackageFactorInvalid    = "uom.item.package_factor_invalid"
	KeyInsufficientStockDetail = "uom.qty_base.insufficient_stock"
	KeyBreakdownPallets        = "uom.breakdown.pallets"
	KeyBreakdownPackages       = "uom.breakdown.packages"
	KeyUnitLabel               = "uom.breakdown.unit"

	KeyInsufficientStock  = "api.insufficient_stock"
	KeyConversionError    = "api.ppu_conversion_error"
	KeyValidationError    = "api.validation_error"
	KeyValidationPrefix   = "api.validation_prefix"
	KeyGenericError       = "api.generic_error"
	KeyUnknownError       = "api.unknown_error"
	KeyNetworkError       = "api.network_error"
	KeyNotFound           = "api.not_found"
	KeyUnauthorized       = "api.unauthorized"
	KeyInvalidBody        = "api.invalid_body"
	KeyInternalError      = "api.internal_error"
	KeyItemMisconfigured  = "api.item_misconfigured"
	KeyInvalidType        = "api.invalid_movement_type"
	KeyCustomerRequired   = "api.customer_required_for_return"
	KeyIdempotencyMissing = "api.idempotency_key_missing"
	KeyForbidden          = "api.forbidden"
	KeyConflict           = "api.conflict"
	KeyTokenInvalid       = "api.token_invalid"
	KeyFieldRequired      = "api.field_required"
	KeyAdjustNoteRequired = "api.adjust_note_required"
	KeyInboundSource      = "api.inbound_supplier_or_note"
	KeyAdjustBelowDefect  = "api.adjust_below_defective"
	KeyNegativeValue      = "api.negative_value"
)

var entries = map[language.Tag]map[string]string{
	German: {
		KeyPalletsInvalid:          "Paletten müssen eine positive Zahl sein",
		KeyPackagesInvalid:         "Pakete müssen eine positive Zahl sein",
		KeySinglesInvalid:          "Einzelne müssen eine positive Zahl sein",
		KeyQtyBaseInvalid:          "Die Gesamtmenge muss eine positive Zahl sein",
		KeyQuantityRequired:        "Mindestens eine Menge muss größer als 0 sein",
		KeyPalletFactorInvalid:     "Artikel hat ungültigen Paletten-Faktor",
		KeyPackageFactorInvalid:    "Artikel hat ungültigen Paket-Faktor",
		KeyInsufficientStockDetail: "Nicht genügend Lagerbestand. Verfügbar: %s, Angefordert: %s",
		KeyBreakdownPallets:        "%s Paletten",
		KeyBreakdownPackages:       "%s Pakete",
		KeyUnitLabel:               "Stück",

		KeyInsufficientStock:  "Nicht genügend Lagerbestand",
		KeyConversionError:    "Fehler bei der Mengenberechnung. Bitte versuchen Sie es erneut.",
		KeyValidationError:    "Validierungsfehler",
		KeyValidationPrefix:   "Validierungsfehler: %s",
		KeyGenericError:       "Ein Fehler ist aufgetreten",
		KeyUnknownError:       "Ein unbekannter Fehler ist aufgetreten",
		KeyNetworkError:       "Netzwerkfehler. Bitte prüfen Sie Ihre Internetverbindung.",
		KeyNotFound:           "Nicht gefunden.",
		KeyUnauthorized:       "Authentifizierungsdaten wurden nicht bereitgestellt.",
		KeyInvalidBody:        "Ungültige Anfrage.",
		KeyInternalError:      "Interner Serverfehler.",
		KeyItemMisconfigured:  "Artikel ist falsch konfiguriert (Einheitenfaktoren müssen >= 1 sein)",
		KeyInvalidType:        "Ungültiger Bewegungstyp: %s",
		KeyCustomerRequired:   "Für Rücknahmen ist ein Kunde erforderlich",
		KeyIdempotencyMissing: "Idempotenz-Schlüssel fehlt",
		KeyForbidden:          "Sie haben keine Berechtigung, diese Aktion auszuführen.",
		KeyConflict:           "Der Datensatz existiert bereits.",
		KeyTokenInvalid:       "Ungültiges oder abgelaufenes Token.",
		KeyFieldRequired:      "Dieses Feld ist erforderlich.",
		KeyAdjustNoteRequired: "Korrekturen benötigen eine Begründung im Notizfeld",
		KeyInboundSource:      "Wareneingänge benötigen einen Lieferanten oder eine Notiz",
		KeyAdjustBelowDefect:  "Die Menge darf nicht unter dem defekten Bestand liegen (%s)",
		KeyNegativeValue:      "Der Wert darf nicht negativ sein",
	},
	English: {
		KeyPalletsInvalid:          "Pallets must be a positive number",
		KeyPackagesInvalid:         "Packages must be a positive number",
		KeySinglesInvalid:          "Singles must be a positive number",
		KeyQtyBaseInvalid:          "Total quantity must be a positive number",
		KeyQuantityRequired:        "At least one quantity must be greater than 0",
		KeyPalletFactorInvalid:     "Item has an invalid pallet factor",
		KeyPackageFactorInvalid:    "Item has an invalid package factor",
		KeyInsufficientStockDetail: "Insufficient stock. Available: %s, requested: %s",
		KeyBreakdownPallets:        "%s pallets",
		KeyBreakdownPackages:       "%s packages",
		KeyUnitLabel:               "units",

		KeyInsufficientStock:  "Insufficient stock",
		KeyConversionError:    "Quantity calculation failed. Please try again.",
		KeyValidationError:    "Validation error",
		KeyValidationPrefix:   "Validation error: %s",
		KeyGenericError:       "An error occurred",
		KeyUnknownError:       "An unknown error occurred",
		KeyNetworkError:       "Network error. Please check your internet connection.",
		KeyNotFound:           "Not found.",
		KeyUnauthorized:       "Authentication credentials were not provided.",
		KeyInvalidBody:        "Invalid request.",
		KeyInternalError:      "Internal server error.",
		KeyItemMisconfigured:  "Item is misconfigured (unit factors must be >= 1)",
		KeyInvalidType:        "Invalid movement type: %s",
		KeyCustomerRequired:   "A customer is required for returns",
		KeyIdempotencyMissing: "Idempotency key is missing",
		KeyForbidden:          "You do not have permission to perform this action.",
		KeyConflict:           "The record already exists.",
		KeyTokenInvalid:       "Invalid or expired token.",
		KeyFieldRequired:      "This field is required.",
		KeyAdjustNoteRequired: "ADJUST movements require a reason in the note field",
		KeyInboundSource:      "IN movements require a supplier or a note",
		KeyAdjustBelowDefect:  "Quantity cannot be below the defective stock (%s)",
		KeyNegativeValue:      "Value must not be negative",
	},
}

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(German))
	for tag, msgs := range entries {
		for key, msg := range msgs {
			// SetString solo falla con mensajes mal formados; el catálogo es estático.
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}
