package i18n

var french = map[string]string{
	// Entry balance and required fields.
	"Entry has no details.":                                  "L'écriture n'a aucune ligne.",
	"Entry must have at least one debit and credit.":         "L'écriture doit avoir au moins un débit et un crédit.",
	"Entry can't have multiple debits and multiple credits.": "L'écriture ne peut pas avoir plusieurs débits et plusieurs crédits.",
	"Entry amounts are out of balance by %s.":                "Les montants de l'écriture sont déséquilibrés de %s.",
	"Description is required.":                               "La description est obligatoire.",
	"Domain is required.":                                    "Le domaine est obligatoire.",
	"Language is required.":                                  "La langue est obligatoire.",
	"Transaction date is required.":                          "La date de transaction est obligatoire.",
	"Entry id is required.":                                  "L'identifiant de l'écriture est obligatoire.",
	"Revision is required.":                                  "La révision est obligatoire.",
	"Pagination token is invalid.":                           "Le jeton de pagination est invalide.",

	// Detail lines.
	"Detail %d has no account.":                                    "La ligne %d n'a pas de compte.",
	"Detail %d account %s not found.":                              "Ligne %d : compte %s introuvable.",
	"Detail %d account identifier %s is invalid.":                  "Ligne %d : l'identifiant de compte %s est invalide.",
	"Detail %d account code and uuid refer to different accounts.": "Ligne %d : le code et l'uuid désignent des comptes différents.",
	"Detail %d cannot post to the root account.":                   "Ligne %d : impossible d'imputer le compte racine.",
	"Detail %d account %s is closed.":                              "Ligne %d : le compte %s est clôturé.",
	"Detail %d has no amount.":                                     "La ligne %d n'a pas de montant.",
	"Detail %d must have exactly one of debit, credit or amount.":  "La ligne %d doit avoir exactement un débit, un crédit ou un montant.",
	"Detail %d amount %s is not a number.":                         "Ligne %d : le montant %s n'est pas un nombre.",
	"Detail %d amount must not be zero.":                           "Ligne %d : le montant ne doit pas être nul.",
	"Detail %d debit and credit amounts must be positive.":         "Ligne %d : les montants au débit et au crédit doivent être positifs.",
	"Detail %d amount %s has more than %d decimal places.":         "Ligne %d : le montant %s a plus de %d décimales.",
	"Detail %d amount %s is out of range.":                         "Ligne %d : le montant %s est hors limites.",

	// References and scopes.
	"%s %s not found.":                                  "%s %s introuvable.",
	"%s identifier %s is invalid.":                      "%s : l'identifiant %s est invalide.",
	"%s code and uuid refer to different records.":      "%s : le code et l'uuid désignent des enregistrements différents.",
	"Journal %s does not belong to the entry's domain.": "Le journal %s n'appartient pas au domaine de l'écriture.",
	"Currency %s is not a valid ISO 4217 code.":         "La devise %s n'est pas un code ISO 4217 valide.",

	// Accounts.
	"Account category %s is not recognised.":        "La catégorie de compte %s est inconnue.",
	"Account must be either debit or credit.":       "Le compte doit être soit au débit soit au crédit.",
	"The root account's code cannot be changed.":    "Le code du compte racine ne peut pas être modifié.",
	"The root account cannot be moved.":             "Le compte racine ne peut pas être déplacé.",
	"The root account has no category or polarity.": "Le compte racine n'a ni catégorie ni sens.",
	"The root account cannot be deleted.":           "Le compte racine ne peut pas être supprimé.",

	// Struct tag checks.
	"Field %s is required.":                               "Le champ %s est obligatoire.",
	"Field %s must have at least %s items or characters.": "Le champ %s doit contenir au moins %s éléments ou caractères.",
	"Field %s must have at most %s items or characters.":  "Le champ %s doit contenir au plus %s éléments ou caractères.",
	"Field %s must be exactly %s characters long.":        "Le champ %s doit contenir exactement %s caractères.",
	"Field %s contains a character that is not allowed.":  "Le champ %s contient un caractère interdit.",
	"Field %s must be a decimal number.":                  "Le champ %s doit être un nombre décimal.",
	"Field %s failed the %s check.":                       "Le champ %s a échoué au contrôle %s.",
	"Input is invalid: %s":                                "Entrée invalide : %s",

	// Sentinels.
	"The record was changed by another request. Reload it and retry.": "L'enregistrement a été modifié par une autre requête. Rechargez-le et réessayez.",
	"The chart of accounts has not been created yet.":                 "Le plan comptable n'a pas encore été créé.",
	"The parent account was not found.":                               "Le compte parent est introuvable.",
	"The requested record was not found.":                             "L'enregistrement demandé est introuvable.",
	"A record with this code already exists.":                         "Un enregistrement avec ce code existe déjà.",
	"The account has sub-accounts. Delete them first or cascade.":     "Le compte a des sous-comptes. Supprimez-les d'abord ou utilisez la cascade.",
	"The account is used by journal entries.":                         "Le compte est utilisé par des écritures.",
	"An account cannot be moved under itself or its descendants.":     "Un compte ne peut pas être déplacé sous lui-même ou ses descendants.",
	"An account cannot be both debit and credit.":                     "Un compte ne peut pas être à la fois au débit et au crédit.",
	"The code and uuid refer to different records.":                   "Le code et l'uuid désignent des enregistrements différents.",
	"The identifier is missing or malformed.":                         "L'identifiant est manquant ou mal formé.",
	"The request is invalid.":                                         "La requête est invalide.",
	"The request could not be parsed: %s":                             "La requête n'a pas pu être lue : %s",
	"An unexpected error occurred.":                                   "Une erreur inattendue s'est produite.",
}
