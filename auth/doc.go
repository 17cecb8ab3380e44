// Package auth groups the authentication building blocks:
//
//   - auth/password — salted password hashing (bcrypt, argon2id)
//   - auth/token    — signed bearer token issuing and verification
//   - auth/authctx  — typed request context propagation for the principal
//
// The top-level package holds the composed Config and the TokenValidator
// contract that HTTP middleware depends on.
//
//	auth:
//	  token:
//	    secret: "${AUTH_TOKEN_SECRET}"
//	    access_token_ttl: "30m"
//	  password:
//	    algorithm: "bcrypt"
//	    bcrypt_cost: 12
package auth
