package cryptox

// CodeAlphabet omits characters that are easy to misread (0/O, 1/I).
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the length of generated invite codes.
const CodeLength = 12

// GenerateCode returns a random invite code over CodeAlphabet.
func GenerateCode() (string, error) {
	return randomString(CodeAlphabet, CodeLength)
}
