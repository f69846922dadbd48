package handlers

import (
	"net/http"

	"foodlink/internal/middleware"
)

// messages holds the client-facing texts per locale. English strings keep the
// exact wording the frontend already matches on.
var messages = map[string]map[string]string{
	"en": {
		"signup_ok":             "User registered successfully",
		"login_ok":              "Login successful",
		"donation_saved":        "Donation saved successfully!",
		"donation_updated":      "Donation updated successfully!",
		"donation_deleted":      "Donation deleted successfully!",
		"donation_claimed_ok":   "Donation successfully claimed!",
		"invalid_payload":       "Invalid request payload.",
		"fields_required":       "All fields are required.",
		"invalid_quantity":      "Invalid data type for quantity.",
		"donation_id_required":  "Donation ID is required.",
		"email_exists":          "Email already exists",
		"username_exists":       "Username already exists",
		"user_not_found":        "User not found",
		"invalid_password":      "Invalid password",
		"donation_not_found":    "Donation not found.",
		"cannot_update_claimed": "Cannot update a claimed donation.",
		"cannot_delete_claimed": "Cannot delete a claimed donation.",
		"donation_claimed":      "Donation already claimed.",
		"no_donor_donations":    "No donations found for this donor.",
		"no_matching":           "No matching donations found in this location.",
		"unauthorized":          "Missing user context.",
		"internal":              "Internal server error",
	},
	"id": {
		"signup_ok":             "Pendaftaran berhasil",
		"login_ok":              "Login berhasil",
		"donation_saved":        "Donasi berhasil disimpan!",
		"donation_updated":      "Donasi berhasil diperbarui!",
		"donation_deleted":      "Donasi berhasil dihapus!",
		"donation_claimed_ok":   "Donasi berhasil diklaim!",
		"invalid_payload":       "Permintaan tidak valid.",
		"fields_required":       "Semua kolom wajib diisi.",
		"invalid_quantity":      "Jumlah harus berupa bilangan bulat.",
		"donation_id_required":  "ID donasi wajib diisi.",
		"email_exists":          "Email sudah terdaftar",
		"username_exists":       "Nama pengguna sudah terdaftar",
		"user_not_found":        "Pengguna tidak ditemukan",
		"invalid_password":      "Kata sandi salah",
		"donation_not_found":    "Donasi tidak ditemukan.",
		"cannot_update_claimed": "Donasi yang sudah diklaim tidak dapat diubah.",
		"cannot_delete_claimed": "Donasi yang sudah diklaim tidak dapat dihapus.",
		"donation_claimed":      "Donasi sudah diklaim.",
		"no_donor_donations":    "Tidak ada donasi untuk donatur ini.",
		"no_matching":           "Tidak ada donasi yang cocok di lokasi ini.",
		"unauthorized":          "Konteks pengguna tidak ditemukan.",
		"internal":              "Terjadi kesalahan pada server",
	},
}

// localize resolves a message key against the request locale, falling back to
// English, then to the key itself.
func localize(r *http.Request, key string) string {
	locale := "en"
	if r != nil {
		locale = middleware.LocaleFromContext(r.Context())
	}
	if m, ok := messages[locale]; ok {
		if text, ok := m[key]; ok {
			return text
		}
	}
	if text, ok := messages["en"][key]; ok {
		return text
	}
	return key
}
