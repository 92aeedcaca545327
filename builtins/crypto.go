package builtins

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"

	"golosina/types"
)

// argon2id parameters used by crypto.argon2
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// ============================================================================
// CRYPTO MODULE
// ============================================================================

func (r *Registry) cryptoModule() *types.Object {
	return r.newModule(
		types.NewNative("hash", types.Variadic, builtinHash),
		types.NewNative("hmac", types.Variadic, builtinHmac),
		types.NewNative("sha3", types.Fixed(1), fixedHash("sha3-256")),
		types.NewNative("ripemd160", types.Fixed(1), fixedHash("ripemd160")),
		types.NewNative("argon2", types.Fixed(2), builtinArgon2),
		types.NewNative("crypt", types.Variadic, builtinCrypt),
		types.NewNative("verifyCrypt", types.Fixed(2), builtinVerifyCrypt),
		types.NewNative("encodeBase64", types.Fixed(1), builtinEncodeBase64),
		types.NewNative("decodeBase64", types.Fixed(1), builtinDecodeBase64),
	)
}

// getHasher returns a hash.Hash for the given algorithm name
func getHasher(algo string) (hash.Hash, bool) {
	switch strings.ToLower(algo) {
	case "md5":
		return md5.New(), true
	case "sha1":
		return sha1.New(), true
	case "sha224":
		return sha256.New224(), true
	case "sha256", "":
		return sha256.New(), true
	case "sha384":
		return sha512.New384(), true
	case "sha512":
		return sha512.New(), true
	case "sha3-256":
		return sha3.New256(), true
	case "sha3-512":
		return sha3.New512(), true
	case "ripemd160":
		return ripemd160.New(), true
	default:
		return nil, false
	}
}

// optionalAlgo reads the algorithm name at args[i], defaulting to sha256
func optionalAlgo(args []types.Value, i int) (string, error) {
	if len(args) <= i {
		return "sha256", nil
	}
	return types.StringArg(args, i)
}

// builtinHash hashes a string with the specified algorithm
// hash(str [, algo]) -> str (uppercase hex)
func builtinHash(args []types.Value) (any, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, types.NewError(types.E_ARGS, "hash expects 1 or 2 arguments, got %d", len(args))
	}
	str, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	algo, err := optionalAlgo(args, 1)
	if err != nil {
		return nil, err
	}
	return hashHex(str, algo)
}

func hashHex(str, algo string) (string, error) {
	hasher, ok := getHasher(algo)
	if !ok {
		return "", types.NewError(types.E_INVARG, "unknown hash algorithm %q", algo)
	}
	hasher.Write([]byte(str))
	return strings.ToUpper(hex.EncodeToString(hasher.Sum(nil))), nil
}

// fixedHash binds hash to one algorithm
func fixedHash(algo string) types.NativeFunc {
	return func(args []types.Value) (any, error) {
		str, err := types.StringArg(args, 0)
		if err != nil {
			return nil, err
		}
		return hashHex(str, algo)
	}
}

// builtinHmac computes an HMAC of a string
// hmac(str, key [, algo]) -> str (uppercase hex)
func builtinHmac(args []types.Value) (any, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, types.NewError(types.E_ARGS, "hmac expects 2 or 3 arguments, got %d", len(args))
	}
	str, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	key, err := types.StringArg(args, 1)
	if err != nil {
		return nil, err
	}
	algo, err := optionalAlgo(args, 2)
	if err != nil {
		return nil, err
	}
	if _, ok := getHasher(algo); !ok {
		return nil, types.NewError(types.E_INVARG, "unknown hash algorithm %q", algo)
	}

	mac := hmac.New(func() hash.Hash {
		h, _ := getHasher(algo)
		return h
	}, []byte(key))
	mac.Write([]byte(str))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil))), nil
}

// builtinArgon2 derives an argon2id key from a password and salt
// argon2(password, salt) -> str (lowercase hex)
func builtinArgon2(args []types.Value) (any, error) {
	password, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	salt, err := types.StringArg(args, 1)
	if err != nil {
		return nil, err
	}
	if len(salt) < 8 {
		return nil, types.NewError(types.E_INVARG, "argon2 salt must be at least 8 bytes")
	}
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(key), nil
}

// builtinCrypt hashes a password with bcrypt; the salt is generated
// crypt(password [, cost]) -> str ($2a$ format)
func builtinCrypt(args []types.Value) (any, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, types.NewError(types.E_ARGS, "crypt expects 1 or 2 arguments, got %d", len(args))
	}
	password, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	cost := int64(bcrypt.DefaultCost)
	if len(args) == 2 {
		if cost, err = types.IntArg(args, 1); err != nil {
			return nil, err
		}
	}
	if cost < int64(bcrypt.MinCost) || cost > int64(bcrypt.MaxCost) {
		return nil, types.NewError(types.E_INVARG, "crypt cost must be %d-%d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if len(password) > 72 {
		return nil, types.NewError(types.E_INVARG, "crypt password longer than 72 bytes")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), int(cost))
	if err != nil {
		return nil, types.NewError(types.E_HOST, "crypt: %v", err)
	}
	return string(hashed), nil
}

// builtinVerifyCrypt checks a password against a crypt() hash
// verifyCrypt(hash, password) -> bool
func builtinVerifyCrypt(args []types.Value) (any, error) {
	hashed, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	password, err := types.StringArg(args, 1)
	if err != nil {
		return nil, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case err == bcrypt.ErrMismatchedHashAndPassword:
		return false, nil
	default:
		return nil, types.NewError(types.E_INVARG, "verifyCrypt: malformed hash")
	}
}

// builtinEncodeBase64 encodes a string to standard base64
// encodeBase64(str) -> str
func builtinEncodeBase64(args []types.Value) (any, error) {
	str, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	return base64.StdEncoding.EncodeToString([]byte(str)), nil
}

// builtinDecodeBase64 decodes standard base64, accepting missing padding
// decodeBase64(str) -> str
func builtinDecodeBase64(args []types.Value) (any, error) {
	str, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(str, "="))
		if err != nil {
			return nil, types.NewError(types.E_INVARG, "invalid base64 input")
		}
	}
	return string(data), nil
}
