package controller

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"os"

	"github.com/Brandonkhumalo/harare-wheels-showcase/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SendContact relays a website inquiry to the dealership mailbox over SMTP.
func SendContact(c *gin.Context) {
	var msg models.ContactMessage

	if err := c.ShouldBindJSON(&msg); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	validate := validator.New()
	if err := validate.Struct(msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if msg.Phone == "" {
		msg.Phone = "Not provided"
	}

	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	destination := os.Getenv("CONTACT_DESTINATION")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || destination == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email configuration not set"})
		return
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	body := fmt.Sprintf(`New contact form submission from the Harare Wheels website:

Name: %s
Email: %s
Phone: %s
Subject: %s

Message:
%s

---
This email was sent from the Harare Wheels website contact form.
`, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message)

	if err := sendMail(smtpHost, smtpPort, smtpUser, smtpPass, destination, "Website Inquiry: "+msg.Subject, body); err != nil {
		log.Println("Email error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

func sendMail(host, port, user, pass, to, subject, body string) error {
	client, err := smtp.Dial(host + ":" + port)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", user, pass, host)
	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(user); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(wc, "To: %s\r\nSubject: %s\r\n\r\n%s", to, subject, body); err != nil {
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}

	return client.Quit()
}
