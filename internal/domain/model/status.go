package model

// OrderStatus mirrors the payment provider vocabulary. The provider is the
// system of record; values are stored verbatim and only canonicalized for
// display and lifecycle decisions.
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "pending"
	OrderStatusProcessing        OrderStatus = "processing"
	OrderStatusPaid              OrderStatus = "paid"
	OrderStatusSucceeded         OrderStatus = "succeeded"
	OrderStatusFailed            OrderStatus = "failed"
	OrderStatusCancelled         OrderStatus = "cancelled"
	OrderStatusCanceled          OrderStatus = "canceled"
	OrderStatusRefunded          OrderStatus = "refunded"
	OrderStatusPartiallyRefunded OrderStatus = "partially_refunded"
)

// StatusInfo carries presentational metadata for a status. It drives the
// order history and invoice views and has no behavioral meaning.
type StatusInfo struct {
	Label       string
	Description string
	NextSteps   string
}

var statusInfos = map[OrderStatus]StatusInfo{
	OrderStatusPending: {
		Label:       "En attente",
		Description: "Le paiement n'a pas encore été confirmé.",
		NextSteps:   "Finalisez votre paiement pour activer vos services.",
	},
	OrderStatusProcessing: {
		Label:       "En cours",
		Description: "Le paiement est en cours de traitement par notre prestataire.",
		NextSteps:   "Aucune action requise, le statut sera mis à jour automatiquement.",
	},
	OrderStatusPaid: {
		Label:       "Payé",
		Description: "Le paiement a été encaissé avec succès.",
		NextSteps:   "Votre facture est disponible depuis votre historique de commandes.",
	},
	OrderStatusFailed: {
		Label:       "Échec",
		Description: "Le paiement a été refusé ou a échoué.",
		NextSteps:   "Vérifiez votre moyen de paiement puis relancez la commande.",
	},
	OrderStatusCancelled: {
		Label:       "Annulé",
		Description: "La commande a été annulée avant encaissement.",
		NextSteps:   "Repassez commande si l'annulation n'était pas volontaire.",
	},
	OrderStatusRefunded: {
		Label:       "Remboursé",
		Description: "Le montant total de la commande a été remboursé.",
		NextSteps:   "Le remboursement apparaît sous 5 à 10 jours ouvrés sur votre relevé.",
	},
	OrderStatusPartiallyRefunded: {
		Label:       "Partiellement remboursé",
		Description: "Une partie du montant de la commande a été remboursée.",
		NextSteps:   "Contactez le support pour le détail du remboursement partiel.",
	},
}

// Canonical folds provider aliases onto a single state: succeeded is paid,
// canceled is cancelled. Unknown values pass through unchanged.
func (s OrderStatus) Canonical() OrderStatus {
	switch s {
	case OrderStatusSucceeded:
		return OrderStatusPaid
	case OrderStatusCanceled:
		return OrderStatusCancelled
	}
	return s
}

// Known reports whether the status belongs to the recognized vocabulary.
func (s OrderStatus) Known() bool {
	_, ok := statusInfos[s.Canonical()]
	return ok
}

// Info returns display metadata for the status. Unrecognized provider values
// degrade to the pending display instead of failing, because the status
// vocabulary belongs to an external system that may evolve.
func (s OrderStatus) Info() StatusInfo {
	if info, ok := statusInfos[s.Canonical()]; ok {
		return info
	}
	return statusInfos[OrderStatusPending]
}

// Terminal reports whether no further automatic transition is expected from
// the customer's point of view. A paid order may still move to refunded or
// partially_refunded through an admin or provider action.
func (s OrderStatus) Terminal() bool {
	switch s.Canonical() {
	case OrderStatusPaid, OrderStatusFailed, OrderStatusRefunded, OrderStatusCancelled:
		return true
	}
	return false
}

// Immutable reports whether the order may no longer change status at all.
// Metadata annotations remain allowed.
func (s OrderStatus) Immutable() bool {
	switch s.Canonical() {
	case OrderStatusRefunded, OrderStatusCancelled:
		return true
	}
	return false
}
