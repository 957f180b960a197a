package core

import "testing"

func TestCompanyMUSRoundTrip(t *testing.T) {
	company := Company{
		Name: "Acme Analytics", Industry: "Tech", Location: "Berlin",
		Revenue: 1_000_000, TeamSize: 12, Founded: 2015,
		Website: "https://acme.io", Description: "cloud analytics",
		Needs: "enterprise customers", Challenges: "scaling",
	}

	buf := make([]byte, CompanyMUS.Size(company))
	n := CompanyMUS.Marshal(company, buf)
	if n != len(buf) {
		t.Fatalf("Marshal used %d bytes, Size reported %d", n, len(buf))
	}

	decoded, n, err := CompanyMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if n != len(buf) {
		t.Errorf("Unmarshal consumed %d bytes, expected %d", n, len(buf))
	}
	if decoded != company {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, company)
	}
}

func TestVectorMUSRoundTrip(t *testing.T) {
	vector := []float32{1, -0.5, 0.25}

	buf := make([]byte, VectorMUS.Size(vector))
	n := VectorMUS.Marshal(vector, buf)
	if n != len(buf) {
		t.Fatalf("Marshal used %d bytes, Size reported %d", n, len(buf))
	}

	decoded, _, err := VectorMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(decoded) != len(vector) {
		t.Fatalf("round trip length mismatch: got %d, want %d", len(decoded), len(vector))
	}
	for i := range vector {
		if decoded[i] != vector[i] {
			t.Errorf("component %d: got %v, want %v", i, decoded[i], vector[i])
		}
	}
}

func TestCompanyMUSUnmarshalTruncated(t *testing.T) {
	company := Company{Name: "Acme", Industry: "Tech", Location: "Berlin",
		Revenue: 1, TeamSize: 1, Founded: 2000,
		Website: "w", Description: "d", Needs: "n", Challenges: "c"}
	buf := make([]byte, CompanyMUS.Size(company))
	CompanyMUS.Marshal(company, buf)

	if _, _, err := CompanyMUS.Unmarshal(buf[:len(buf)/2]); err == nil {
		t.Error("expected an error for truncated input")
	}
}
