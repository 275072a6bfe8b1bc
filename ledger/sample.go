// sample.go - Built-in seed data used when no usable snapshot exists.
// These records mirror the demo inventory shipped with the original web
// client, so a fresh install shows a populated dashboard immediately.
package ledger

// SampleMedications returns the built-in demo inventory.
func SampleMedications() []Medication {
	return []Medication{
		{ID: 1, Name: "Paracetamol 500mg", Lot: "LOT001", Expiry: "2024-12-15", Manufacturer: "PharmaCorp", Category: "Analgésico", Stock: 150},
		{ID: 2, Name: "Amoxicilina 250mg", Lot: "LOT002", Expiry: "2024-08-20", Manufacturer: "MediLab", Category: "Antibiótico", Stock: 25},
		{ID: 3, Name: "Ibuprofeno 400mg", Lot: "LOT003", Expiry: "2025-03-10", Manufacturer: "HealthGen", Category: "Anti-inflamatório", Stock: 80},
		{ID: 4, Name: "Metformina 850mg", Lot: "LOT004", Expiry: "2024-09-05", Manufacturer: "DiabetCare", Category: "Antidiabético", Stock: 5},
		{ID: 5, Name: "Lisinopril 10mg", Lot: "LOT005", Expiry: "2025-01-30", Manufacturer: "CardioMed", Category: "Inibidor ECA", Stock: 120},
	}
}

// SampleEntries returns the built-in demo receipts.
func SampleEntries() []Entry {
	return []Entry{
		{ID: 1, Medication: "Paracetamol 500mg", Lot: "LOT001", Date: "2024-06-01", Supplier: "MedSupply Co.", Quantity: 100},
		{ID: 2, Medication: "Amoxicilina 250mg", Lot: "LOT002", Date: "2024-06-02", Supplier: "PharmaDist", Quantity: 50},
		{ID: 3, Medication: "Ibuprofeno 400mg", Lot: "LOT003", Date: "2024-06-03", Supplier: "HealthSource", Quantity: 75},
	}
}

// SampleExits returns the built-in demo disbursements.
func SampleExits() []Exit {
	return []Exit{
		{ID: 1, Medication: "Paracetamol 500mg", Date: "2024-06-04", Reason: ReasonPrescription, Responsible: "Dr. Silva", Quantity: 10},
		{ID: 2, Medication: "Amoxicilina 250mg", Date: "2024-06-05", Reason: ReasonHospitalTransfer, Responsible: "Enfermeira Santos", Quantity: 25},
		{ID: 3, Medication: "Ibuprofeno 400mg", Date: "2024-06-06", Reason: ReasonPatientRequest, Responsible: "Farmacêutico Costa", Quantity: 5},
	}
}
