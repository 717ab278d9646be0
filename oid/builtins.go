package oid

// builtinEntry is one row of the builtin OID table. Order determines
// which name becomes primary when an OID is registered under more than one
// name (the first registration for a given OID wins ToName, per
// Registry.Register).
type builtinEntry struct {
	numeric string
	name    string
}

// builtinTable is a representative slice of the families spec.md §6 names:
// PKIX, X.500 attribute types, PKCS#1, NIST algorithm identifiers, X9.57,
// SEC, and common Microsoft extensions. It is not exhaustive — this is an
// OID-name registry for prettier output, not a certificate validator.
var builtinTable = []builtinEntry{
	// X.500 attribute types
	{"2.5.4.3", "id-at-commonName"},
	{"2.5.4.6", "id-at-countryName"},
	{"2.5.4.7", "id-at-localityName"},
	{"2.5.4.8", "id-at-stateOrProvinceName"},
	{"2.5.4.10", "id-at-organizationName"},
	{"2.5.4.11", "id-at-organizationalUnitName"},
	{"2.5.4.5", "id-at-serialNumber"},

	// X.509 / PKIX certificate extensions
	{"2.5.29.14", "id-ce-subjectKeyIdentifier"},
	{"2.5.29.15", "id-ce-keyUsage"},
	{"2.5.29.17", "id-ce-subjectAltName"},
	{"2.5.29.19", "id-ce-basicConstraints"},
	{"2.5.29.31", "id-ce-cRLDistributionPoints"},
	{"2.5.29.32", "id-ce-certificatePolicies"},
	{"2.5.29.35", "id-ce-authorityKeyIdentifier"},

	// PKIX private extensions (id-pe) and access descriptions (id-ad)
	{"1.3.6.1.5.5.7.1.1", "id-pe-authorityInfoAccess"},
	{"1.3.6.1.5.5.7.48.1", "id-ad-ocsp"},
	{"1.3.6.1.5.5.7.48.2", "id-ad-caIssuers"},

	// PKIX extended key usage (id-kp)
	{"1.3.6.1.5.5.7.3.1", "id-kp-serverAuth"},
	{"1.3.6.1.5.5.7.3.2", "id-kp-clientAuth"},
	{"1.3.6.1.5.5.7.3.3", "id-kp-codeSigning"},
	{"1.3.6.1.5.5.7.3.4", "id-kp-emailProtection"},
	{"1.3.6.1.5.5.7.3.8", "id-kp-timeStamping"},
	{"1.3.6.1.5.5.7.3.9", "id-kp-OCSPSigning"},

	// PKCS#1
	{"1.2.840.113549.1.1.1", "rsaEncryption"},
	{"1.2.840.113549.1.1.5", "sha1WithRSAEncryption"},
	{"1.2.840.113549.1.1.11", "sha256WithRSAEncryption"},
	{"1.2.840.113549.1.1.12", "sha384WithRSAEncryption"},
	{"1.2.840.113549.1.1.13", "sha512WithRSAEncryption"},

	// PKCS#7 / PKCS#9
	{"1.2.840.113549.1.7.1", "data"},
	{"1.2.840.113549.1.7.2", "signedData"},
	{"1.2.840.113549.1.9.1", "emailAddress"},
	{"1.2.840.113549.1.9.3", "contentType"},
	{"1.2.840.113549.1.9.4", "messageDigest"},
	{"1.2.840.113549.1.9.5", "signingTime"},

	// NIST algorithm identifiers (NIST SHA-2 / AES)
	{"2.16.840.1.101.3.4.2.1", "id-sha256"},
	{"2.16.840.1.101.3.4.2.2", "id-sha384"},
	{"2.16.840.1.101.3.4.2.3", "id-sha512"},
	{"2.16.840.1.101.3.4.1.2", "id-aes128-CBC"},
	{"2.16.840.1.101.3.4.1.42", "id-aes256-CBC"},

	// X9.57 / ANSI X9.62 (DSA, ECDSA)
	{"1.2.840.10040.4.1", "id-dsa"},
	{"1.2.840.10040.4.3", "id-dsa-with-sha1"},
	{"1.2.840.10045.2.1", "id-ecPublicKey"},
	{"1.2.840.10045.4.3.2", "ecdsa-with-SHA256"},
	{"1.2.840.10045.4.3.3", "ecdsa-with-SHA384"},

	// SEC named elliptic curves
	{"1.3.132.0.34", "secp384r1"},
	{"1.3.132.0.35", "secp521r1"},
	{"1.2.840.10045.3.1.7", "prime256v1"},

	// Microsoft extensions
	{"1.3.6.1.4.1.311.20.2", "szOID_ENROLL_CERTTYPE_EXTENSION"},
	{"1.3.6.1.4.1.311.21.10", "szOID_APPLICATION_CERT_POLICIES"},
	{"1.3.6.1.4.1.311.10.3.1", "szOID_CERT_TRUST_LIST_SIGNING"},

	// Hash algorithms outside the NIST table above
	{"1.3.14.3.2.26", "id-sha1"},
}
